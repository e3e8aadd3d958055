package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sportmate_server/models"
)

// fixture wires every service around one in-memory store.
type fixture struct {
	store         *MemoryStore
	users         *UserService
	games         *GameService
	groups        *GroupService
	turfs         *TurfService
	friends       *FriendService
	chat          *ChatService
	ratings       *RatingService
	notifications *NotificationService
	reaper        *Reaper
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := NewMemoryStore()
	locks := NewKeyedMutex()
	notifications := NewNotificationService(store)
	users := NewUserService(store)
	groups := NewGroupService(store, store, store, notifications, locks)
	games := NewGameService(store, store, store, users, groups, notifications, locks)
	turfs := NewTurfService(store, store, notifications)
	friends := NewFriendService(store, store, notifications)
	chat := NewChatService(store, store, friends)
	ratings := NewRatingService(store, store, store, notifications)
	return &fixture{
		store:         store,
		users:         users,
		games:         games,
		groups:        groups,
		turfs:         turfs,
		friends:       friends,
		chat:          chat,
		ratings:       ratings,
		notifications: notifications,
		reaper:        NewReaper(groups),
	}
}

// player registers a player account and returns it.
func (f *fixture) player(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), RegisterRequest{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "5550001",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

// turfOwner registers a turf-owner account and returns it.
func (f *fixture) turfOwner(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), RegisterRequest{
		Name:            name,
		Email:           name + "@example.com",
		Phone:           "5550002",
		Password:        "secret123",
		Role:            models.RoleTurfOwner,
		BusinessName:    name + " Sports",
		BusinessAddress: "12 Stadium Road",
	})
	require.NoError(t, err)
	return user
}

// game posts a game at the given point and returns it with its group.
func (f *fixture) game(t *testing.T, creator *models.User, sport string, needed int, lat, lng float64) (*models.Game, *models.Group) {
	t.Helper()
	game, group, err := f.games.CreateGame(context.Background(), CreateGameRequest{
		UserID:        creator.ID,
		Sport:         sport,
		PlayersNeeded: needed,
		Location:      models.Location{Lat: lat, Lng: lng, Address: "Central Park"},
		Date:          "2026-09-01",
		Time:          "18:00",
	})
	require.NoError(t, err)
	return game, group
}

// fillGame joins count fresh players into the game.
func (f *fixture) fillGame(t *testing.T, gameID, prefix string, count int) []*models.User {
	t.Helper()
	joined := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		u := f.player(t, prefix+string(rune('a'+i)))
		_, err := f.games.JoinGame(context.Background(), gameID, u.ID)
		require.NoError(t, err)
		joined = append(joined, u)
	}
	return joined
}

// freeze pins the group service clock and returns it.
func (f *fixture) freeze(at time.Time) {
	f.groups.Now = func() time.Time { return at }
}
