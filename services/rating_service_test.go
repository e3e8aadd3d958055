package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatePlayer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, _ := f.game(t, alice, "football", 2, 12.97, 77.59)
	_, err := f.games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)

	rating, summary, err := f.ratings.RatePlayer(ctx, RateRequest{
		GameID:      game.ID,
		RaterID:     alice.ID,
		RatedUserID: bob.ID,
		Overall:     4,
		Skill:       5,
		Review:      "solid keeper",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Overall)
	assert.Equal(t, 5, rating.Skill)
	// Omitted sub-scores default to the overall.
	assert.Equal(t, 4, rating.Punctuality)
	assert.Equal(t, 4, rating.Teamwork)
	assert.InDelta(t, 4.0, summary.AverageRating, 1e-9)
	assert.Equal(t, 1, summary.TotalRatings)

	// The rated user's stats track the aggregate.
	rated, err := f.users.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, rated.Stats.AverageRating, 1e-9)
	assert.Equal(t, 1, rated.Stats.TotalRatings)

	// One rating per rater per game per player.
	_, _, err = f.ratings.RatePlayer(ctx, RateRequest{
		GameID: game.ID, RaterID: alice.ID, RatedUserID: bob.ID, Overall: 2,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRatePlayerGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, _ := f.game(t, alice, "football", 2, 12.97, 77.59)

	_, _, err := f.ratings.RatePlayer(ctx, RateRequest{
		GameID: game.ID, RaterID: alice.ID, RatedUserID: alice.ID, Overall: 4,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = f.ratings.RatePlayer(ctx, RateRequest{
		GameID: game.ID, RaterID: alice.ID, RatedUserID: bob.ID, Overall: 6,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = f.ratings.RatePlayer(ctx, RateRequest{
		GameID: "missing", RaterID: alice.ID, RatedUserID: bob.ID, Overall: 4,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingSummaryAverages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.player(t, "bob")

	for i, overall := range []int{5, 4, 3} {
		rater := f.player(t, "rater"+string(rune('a'+i)))
		game, _ := f.game(t, rater, "football", 3, 12.97, 77.59)
		_, _, err := f.ratings.RatePlayer(ctx, RateRequest{
			GameID: game.ID, RaterID: rater.ID, RatedUserID: bob.ID, Overall: overall,
		})
		require.NoError(t, err)
	}

	summary, err := f.ratings.Summary(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRatings)
	assert.InDelta(t, 4.0, summary.AverageRating, 1e-9)

	ratings, err := f.ratings.RatingsFor(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 3)
}
