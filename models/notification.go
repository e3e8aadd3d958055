package models

import "time"

// Notification kinds emitted by the lifecycle and collaborator services.
const (
	NotificationPlayerJoined    = "player_joined"
	NotificationJoinedGame      = "joined_game"
	NotificationJoinRequested   = "join_requested"
	NotificationRequestAccepted = "request_accepted"
	NotificationRequestDenied   = "request_denied"
	NotificationRemovedFromGame = "removed_from_game"
	NotificationKickedFromGame  = "kicked_from_game"
	NotificationPlayerLeft      = "player_left"
	NotificationGameCancelled   = "game_cancelled"
	NotificationGroupsMerged    = "groups_merged"
	NotificationTurfBooked      = "turf_booked"
	NotificationFriendRequest   = "friend_request"
	NotificationFriendAccepted  = "friend_accepted"
	NotificationNewRating       = "new_rating"
)

// Notification is a stored message for a user. Delivery is fire-and-forget;
// a failed write never fails the operation that produced it.
type Notification struct {
	ID        string            `dynamodbav:"id" json:"id"`
	UserID    string            `dynamodbav:"userId" json:"user_id"`
	Kind      string            `dynamodbav:"kind" json:"kind"`
	Title     string            `dynamodbav:"title" json:"title"`
	Body      string            `dynamodbav:"body" json:"body"`
	Data      map[string]string `dynamodbav:"data,omitempty" json:"data,omitempty"`
	Read      bool              `dynamodbav:"read" json:"read"`
	CreatedAt time.Time         `dynamodbav:"createdAt" json:"created_at"`
}

// NotificationsTable is the DynamoDB table name for notifications.
const NotificationsTable = "Notifications"
