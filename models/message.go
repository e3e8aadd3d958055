package models

import "time"

// ChatMessage is a stored chat message. Exactly one of GroupID or RecipientID
// is set: group chat or direct message.
type ChatMessage struct {
	ID          string    `dynamodbav:"id" json:"id"`
	GroupID     string    `dynamodbav:"groupId,omitempty" json:"group_id,omitempty"`
	RecipientID string    `dynamodbav:"recipientId,omitempty" json:"recipient_id,omitempty"`
	SenderID    string    `dynamodbav:"senderId" json:"sender_id"`
	SenderName  string    `dynamodbav:"senderName" json:"sender_name"`
	Content     string    `dynamodbav:"content" json:"content"`
	CreatedAt   time.Time `dynamodbav:"createdAt" json:"created_at"`
}

// MessagesTable is the DynamoDB table name for chat messages.
const MessagesTable = "Messages"
