package services

import (
	"context"

	"sportmate_server/models"
)

// Store contracts consumed by the services. Lookups return (nil, nil) when the
// record is absent; the caller decides whether that is an error. Both the
// DynamoDB and the in-memory implementations satisfy all of them.

// UserStore persists user accounts.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	PutUser(ctx context.Context, user *models.User) error
}

// GameStore persists game posts.
type GameStore interface {
	GetGame(ctx context.Context, id string) (*models.Game, error)
	PutGame(ctx context.Context, game *models.Game) error
	DeleteGame(ctx context.Context, id string) error
	ListGames(ctx context.Context) ([]models.Game, error)
}

// GroupStore persists chat groups.
type GroupStore interface {
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	PutGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id string) error
	ListGroups(ctx context.Context) ([]models.Group, error)
}

// TurfStore persists venues.
type TurfStore interface {
	GetTurf(ctx context.Context, id string) (*models.Turf, error)
	PutTurf(ctx context.Context, turf *models.Turf) error
	DeleteTurf(ctx context.Context, id string) error
	ListTurfs(ctx context.Context) ([]models.Turf, error)
}

// FriendStore persists friend requests and accepted friendships.
type FriendStore interface {
	GetFriendRequest(ctx context.Context, id string) (*models.FriendRequest, error)
	// GetFriendRequestBetween returns any request linking the two users,
	// regardless of direction or status.
	GetFriendRequestBetween(ctx context.Context, a, b string) (*models.FriendRequest, error)
	PutFriendRequest(ctx context.Context, request *models.FriendRequest) error
	ListFriendRequestsFor(ctx context.Context, userID string) ([]models.FriendRequest, error)
}

// RatingStore persists player ratings.
type RatingStore interface {
	PutRating(ctx context.Context, rating *models.Rating) error
	ListRatingsFor(ctx context.Context, ratedUserID string) ([]models.Rating, error)
	GetRating(ctx context.Context, gameID, raterID, ratedUserID string) (*models.Rating, error)
}

// NotificationStore persists notifications.
type NotificationStore interface {
	PutNotification(ctx context.Context, notification *models.Notification) error
	GetNotification(ctx context.Context, id string) (*models.Notification, error)
	ListNotificationsFor(ctx context.Context, userID string) ([]models.Notification, error)
}

// MessageStore persists chat messages.
type MessageStore interface {
	PutMessage(ctx context.Context, message *models.ChatMessage) error
	ListGroupMessages(ctx context.Context, groupID string, limit int) ([]models.ChatMessage, error)
	ListDirectMessages(ctx context.Context, userA, userB string) ([]models.ChatMessage, error)
}

// Store bundles every per-entity contract; both backends implement it.
type Store interface {
	UserStore
	GameStore
	GroupStore
	TurfStore
	FriendStore
	RatingStore
	NotificationStore
	MessageStore
}
