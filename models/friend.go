package models

import "time"

// Friend request statuses.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// FriendRequest doubles as the friendship edge once accepted. The relation is
// symmetric: either direction counts when checking friendship.
type FriendRequest struct {
	ID           string    `dynamodbav:"id" json:"id"`
	FromUserID   string    `dynamodbav:"fromUserId" json:"from_user_id"`
	FromUserName string    `dynamodbav:"fromUserName" json:"from_user_name"`
	ToUserID     string    `dynamodbav:"toUserId" json:"to_user_id"`
	ToUserName   string    `dynamodbav:"toUserName" json:"to_user_name"`
	Status       string    `dynamodbav:"status" json:"status"`
	CreatedAt    time.Time `dynamodbav:"createdAt" json:"created_at"`
	AcceptedAt   *time.Time `dynamodbav:"acceptedAt,omitempty" json:"accepted_at,omitempty"`
}

// FriendRequestsTable is the DynamoDB table name for friend requests.
const FriendRequestsTable = "FriendRequests"
