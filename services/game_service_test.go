package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportmate_server/models"
)

// failingGameStore fails the next PutGame calls, then recovers.
type failingGameStore struct {
	GameStore
	failures int
}

func (s *failingGameStore) PutGame(ctx context.Context, game *models.Game) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("storage unavailable")
	}
	return s.GameStore.PutGame(ctx, game)
}

// failingGroupStore fails the next PutGroup calls, then recovers.
type failingGroupStore struct {
	GroupStore
	failures int
}

func (s *failingGroupStore) PutGroup(ctx context.Context, group *models.Group) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("storage unavailable")
	}
	return s.GroupStore.PutGroup(ctx, group)
}

func TestCreateGameBindsGroup(t *testing.T) {
	f := newFixture(t)
	alice := f.player(t, "alice")

	game, group, err := f.games.CreateGame(context.Background(), CreateGameRequest{
		UserID:        alice.ID,
		Sport:         "football",
		PlayersNeeded: 4,
		Location:      models.Location{Lat: 12.97, Lng: 77.59},
	})
	require.NoError(t, err)

	assert.Equal(t, group.ID, game.GroupID)
	assert.Equal(t, game.ID, group.GameID)
	assert.Equal(t, alice.ID, group.OwnerID)
	assert.Empty(t, group.Members)
	assert.Equal(t, models.GameStatusOpen, game.Status)
	require.Len(t, game.AcceptedPlayers, 1)
	assert.Equal(t, alice.ID, game.AcceptedPlayers[0].UserID)

	// Creating counts as organizing and playing.
	refreshed, err := f.users.GetUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.Stats.GamesOrganized)
	assert.Equal(t, 1, refreshed.Stats.GamesPlayed)
}

func TestCreateGameValidation(t *testing.T) {
	f := newFixture(t)
	alice := f.player(t, "alice")

	_, _, err := f.games.CreateGame(context.Background(), CreateGameRequest{
		UserID: alice.ID, Sport: "football", PlayersNeeded: 0,
		Location: models.Location{Lat: 1, Lng: 1},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = f.games.CreateGame(context.Background(), CreateGameRequest{
		UserID: alice.ID, Sport: "", PlayersNeeded: 2,
		Location: models.Location{Lat: 1, Lng: 1},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = f.games.CreateGame(context.Background(), CreateGameRequest{
		UserID: alice.ID, Sport: "football", PlayersNeeded: 2,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSinglePlayerGameIsBornFull(t *testing.T) {
	f := newFixture(t)
	alice := f.player(t, "alice")
	game, _ := f.game(t, alice, "chess", 1, 12.97, 77.59)
	assert.Equal(t, models.GameStatusFull, game.Status)
}

func TestJoinLeaveMirrorsGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, group := f.game(t, alice, "football", 3, 12.97, 77.59)

	joined, err := f.games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, joined.IsAccepted(bob.ID))
	assert.Equal(t, models.GameStatusOpen, joined.Status)

	mirrored, err := f.groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, mirrored.Members, 1)
	assert.Equal(t, bob.ID, mirrored.Members[0].UserID)

	left, err := f.games.LeaveGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, left.IsAccepted(bob.ID))

	mirrored, err = f.groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, mirrored.Members)

	// The creator was notified about both movements.
	notifications, err := f.notifications.List(ctx, alice.ID, false)
	require.NoError(t, err)
	kinds := make([]string, len(notifications))
	for i, n := range notifications {
		kinds[i] = n.Kind
	}
	assert.Contains(t, kinds, models.NotificationPlayerJoined)
	assert.Contains(t, kinds, models.NotificationPlayerLeft)
}

func TestJoinConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, _ := f.game(t, alice, "football", 2, 12.97, 77.59)

	_, err := f.games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)

	// Fullness is checked before duplicate membership, so a member rejoining
	// a full game sees the full error.
	_, err = f.games.JoinGame(ctx, game.ID, bob.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorContains(t, err, "already full")

	// A third player bounces too.
	carol := f.player(t, "carol")
	_, err = f.games.JoinGame(ctx, game.ID, carol.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// On an open game a duplicate join reports the membership conflict.
	dave := f.player(t, "dave")
	open, _ := f.game(t, dave, "cricket", 3, 12.97, 77.59)
	_, err = f.games.JoinGame(ctx, open.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.games.JoinGame(ctx, open.ID, bob.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorContains(t, err, "already joined")
}

func TestFullGameReopensWhenPlayerLeaves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, _ := f.game(t, alice, "tennis", 2, 12.97, 77.59)

	full, err := f.games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusFull, full.Status)

	reopened, err := f.games.LeaveGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusOpen, reopened.Status)
}

func TestCreatorCannotLeave(t *testing.T) {
	f := newFixture(t)
	alice := f.player(t, "alice")
	game, _ := f.game(t, alice, "football", 3, 12.97, 77.59)

	_, err := f.games.LeaveGame(context.Background(), game.ID, alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestActiveGroupCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.player(t, "bob")

	var gameIDs []string
	for _, name := range []string{"host1", "host2", "host3", "host4"} {
		host := f.player(t, name)
		game, _ := f.game(t, host, "football", 5, 12.97, 77.59)
		gameIDs = append(gameIDs, game.ID)
	}

	for _, id := range gameIDs[:3] {
		_, err := f.games.JoinGame(ctx, id, bob.ID)
		require.NoError(t, err)
	}

	// Fourth group bounces on the cap.
	_, err := f.games.JoinGame(ctx, gameIDs[3], bob.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Leaving one game frees a slot.
	_, err = f.games.LeaveGame(ctx, gameIDs[0], bob.ID)
	require.NoError(t, err)
	_, err = f.games.JoinGame(ctx, gameIDs[3], bob.ID)
	assert.NoError(t, err)

	// Organizing a game is exempt from the cap.
	_, _, err = f.games.CreateGame(ctx, CreateGameRequest{
		UserID: bob.ID, Sport: "badminton", PlayersNeeded: 2,
		Location: models.Location{Lat: 12.97, Lng: 77.59},
	})
	assert.NoError(t, err)
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	game, _ := f.game(t, alice, "squash", 2, 12.97, 77.59)

	const contenders = 8
	players := make([]*models.User, contenders)
	for i := range players {
		players[i] = f.player(t, "rival"+string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := range players {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.games.JoinGame(ctx, game.ID, players[i].ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	final, err := f.games.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Len(t, final.AcceptedPlayers, 2)
	assert.Equal(t, models.GameStatusFull, final.Status)
}

func TestJoinGameWriteFailureLeavesGroupUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	flaky := &failingGameStore{GameStore: store}
	locks := NewKeyedMutex()
	notifications := NewNotificationService(store)
	users := NewUserService(store)
	groups := NewGroupService(store, flaky, store, notifications, locks)
	games := NewGameService(flaky, store, store, users, groups, notifications, locks)

	alice, err := users.Register(ctx, RegisterRequest{
		Name: "alice", Email: "alice@example.com", Phone: "5550001", Password: "secret123",
	})
	require.NoError(t, err)
	bob, err := users.Register(ctx, RegisterRequest{
		Name: "bob", Email: "bob@example.com", Phone: "5550002", Password: "secret123",
	})
	require.NoError(t, err)
	game, group, err := games.CreateGame(ctx, CreateGameRequest{
		UserID: alice.ID, Sport: "football", PlayersNeeded: 3,
		Location: models.Location{Lat: 12.97, Lng: 77.59},
	})
	require.NoError(t, err)

	flaky.failures = 1
	_, err = games.JoinGame(ctx, game.ID, bob.ID)
	require.Error(t, err)

	// Neither side of the pair moved.
	after, err := games.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.False(t, after.IsAccepted(bob.ID))
	mirrored, err := groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.False(t, mirrored.HasMember(bob.ID))

	// The store recovered; the same join now goes through on both sides.
	joined, err := games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, joined.IsAccepted(bob.ID))
	mirrored, err = groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, mirrored.HasMember(bob.ID))
}

func TestJoinGroupWriteFailureRevertsGame(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	flaky := &failingGroupStore{GroupStore: store}
	locks := NewKeyedMutex()
	notifications := NewNotificationService(store)
	users := NewUserService(store)
	groups := NewGroupService(flaky, store, store, notifications, locks)
	games := NewGameService(store, flaky, store, users, groups, notifications, locks)

	alice, err := users.Register(ctx, RegisterRequest{
		Name: "alice", Email: "alice@example.com", Phone: "5550001", Password: "secret123",
	})
	require.NoError(t, err)
	bob, err := users.Register(ctx, RegisterRequest{
		Name: "bob", Email: "bob@example.com", Phone: "5550002", Password: "secret123",
	})
	require.NoError(t, err)
	game, group, err := games.CreateGame(ctx, CreateGameRequest{
		UserID: alice.ID, Sport: "football", PlayersNeeded: 2,
		Location: models.Location{Lat: 12.97, Lng: 77.59},
	})
	require.NoError(t, err)

	flaky.failures = 1
	_, err = games.JoinGame(ctx, game.ID, bob.ID)
	require.Error(t, err)

	// The game write was compensated, so the roster matches the group.
	after, err := games.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.False(t, after.IsAccepted(bob.ID))
	assert.Equal(t, models.GameStatusOpen, after.Status)
	mirrored, err := groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.False(t, mirrored.HasMember(bob.ID))
}

func TestRequestAcceptDenyFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	carol := f.player(t, "carol")
	game, group := f.game(t, alice, "football", 5, 12.97, 77.59)

	_, err := f.games.RequestJoin(ctx, game.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.games.RequestJoin(ctx, game.ID, carol.ID)
	require.NoError(t, err)

	// Duplicate request is a conflict.
	_, err = f.games.RequestJoin(ctx, game.ID, bob.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Only the creator can accept.
	_, err = f.games.AcceptRequest(ctx, game.ID, bob.ID, carol.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	accepted, err := f.games.AcceptRequest(ctx, game.ID, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted(bob.ID))
	assert.False(t, accepted.HasPendingRequest(bob.ID))

	mirrored, err := f.groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, mirrored.Members, 1)
	assert.Equal(t, bob.ID, mirrored.Members[0].UserID)

	denied, err := f.games.DenyRequest(ctx, game.ID, alice.ID, carol.ID)
	require.NoError(t, err)
	assert.False(t, denied.HasPendingRequest(carol.ID))
	assert.False(t, denied.IsAccepted(carol.ID))

	// Accepting a request that no longer exists is NotFound.
	_, err = f.games.AcceptRequest(ctx, game.ID, alice.ID, carol.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDenyEvictsAcceptedPlayer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, group := f.game(t, alice, "football", 2, 12.97, 77.59)

	_, err := f.games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)

	evicted, err := f.games.DenyRequest(ctx, game.ID, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, evicted.IsAccepted(bob.ID))
	assert.Equal(t, models.GameStatusOpen, evicted.Status)

	mirrored, err := f.groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, mirrored.Members)

	notifications, err := f.notifications.List(ctx, bob.ID, false)
	require.NoError(t, err)
	require.NotEmpty(t, notifications)
	assert.Equal(t, models.NotificationRemovedFromGame, notifications[0].Kind)
}

func TestKickPlayer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, group := f.game(t, alice, "football", 3, 12.97, 77.59)

	_, err := f.games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)

	// Only the creator can kick, and never themselves.
	_, err = f.games.KickPlayer(ctx, game.ID, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.games.KickPlayer(ctx, game.ID, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrValidation)

	kicked, err := f.games.KickPlayer(ctx, game.ID, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, kicked.IsAccepted(bob.ID))

	mirrored, err := f.groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, mirrored.Members)

	notifications, err := f.notifications.List(ctx, bob.ID, false)
	require.NoError(t, err)
	require.NotEmpty(t, notifications)
	assert.Equal(t, models.NotificationKickedFromGame, notifications[0].Kind)
}

func TestDeleteGameRemovesGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	game, group := f.game(t, alice, "football", 3, 12.97, 77.59)
	_, err := f.games.JoinGame(ctx, game.ID, bob.ID)
	require.NoError(t, err)

	// Only the creator may delete.
	err = f.games.DeleteGame(ctx, game.ID, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.games.DeleteGame(ctx, game.ID, alice.ID))

	_, err = f.games.GetGame(ctx, game.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.groups.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	notifications, err := f.notifications.List(ctx, bob.ID, false)
	require.NoError(t, err)
	require.NotEmpty(t, notifications)
	assert.Equal(t, models.NotificationGameCancelled, notifications[0].Kind)
}

func TestNearbyGames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	near := f.player(t, "near")
	far := f.player(t, "far")
	other := f.player(t, "other")
	f.game(t, near, "football", 5, 0, 0.05)
	f.game(t, far, "football", 5, 0, 0.5)
	f.game(t, other, "cricket", 5, 0, 0.02)

	games, err := f.games.NearbyGames(ctx, 0, 0, 10, "")
	require.NoError(t, err)
	require.Len(t, games, 2)
	// Closest first.
	assert.Equal(t, "cricket", games[0].Sport)
	assert.Equal(t, "football", games[1].Sport)

	filtered, err := f.games.NearbyGames(ctx, 0, 0, 10, "FOOTBALL")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, near.ID, filtered[0].UserID)
}

func TestNearbyGamesExcludesFullGames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	f.game(t, alice, "chess", 1, 0, 0.01)

	games, err := f.games.NearbyGames(ctx, 0, 0, 10, "")
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestNearbyGamesWithTurfs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	owner := f.turfOwner(t, "owner")
	game, _ := f.game(t, alice, "football", 5, 0, 0.05)

	// One turf next to the game, one far away.
	_, err := f.turfs.CreateTurf(ctx, CreateTurfRequest{
		OwnerID:  owner.ID,
		Name:     "Close Arena",
		Location: models.Location{Lat: 0, Lng: 0.06},
		Sports:   []string{"football"},
		Pricing:  models.TurfPricing{PerHour: 900},
		Timings:  models.TurfTimings{Opening: "06:00", Closing: "22:00"},
	})
	require.NoError(t, err)
	_, err = f.turfs.CreateTurf(ctx, CreateTurfRequest{
		OwnerID:  owner.ID,
		Name:     "Remote Arena",
		Location: models.Location{Lat: 2, Lng: 2},
		Sports:   []string{"football"},
		Pricing:  models.TurfPricing{PerHour: 700},
		Timings:  models.TurfTimings{Opening: "06:00", Closing: "22:00"},
	})
	require.NoError(t, err)

	games, err := f.games.NearbyGamesWithTurfs(ctx, 0, 0, 10, "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, game.ID, games[0].ID)
	require.Len(t, games[0].NearbyTurfs, 1)
	assert.Equal(t, "Close Arena", games[0].NearbyTurfs[0].Name)
	// Distance is measured from the game, not the query origin.
	assert.InDelta(t, 1.11, games[0].NearbyTurfs[0].DistanceKm, 0.05)
}

func TestUserGames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")
	bob := f.player(t, "bob")
	created, _ := f.game(t, alice, "football", 3, 12.97, 77.59)
	joined, _ := f.game(t, bob, "cricket", 3, 12.97, 77.59)
	_, err := f.games.JoinGame(ctx, joined.ID, alice.ID)
	require.NoError(t, err)

	games, err := f.games.UserGames(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, games, 2)
	ids := []string{games[0].ID, games[1].ID}
	assert.Contains(t, ids, created.ID)
	assert.Contains(t, ids, joined.ID)
}
