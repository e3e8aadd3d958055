package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sportmate_server/models"
)

// ChatService stores and reads chat messages. Group messages are restricted
// to current group members; direct messages to accepted friends.
type ChatService struct {
	Messages MessageStore
	Groups   GroupStore
	Friends  *FriendService
}

// NewChatService wires the stores.
func NewChatService(messages MessageStore, groups GroupStore, friends *FriendService) *ChatService {
	return &ChatService{Messages: messages, Groups: groups, Friends: friends}
}

// memberGroup loads the group and verifies membership.
func (s *ChatService) memberGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.Groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}
	if !group.HasMember(userID) {
		return nil, fmt.Errorf("you are not a member of this group: %w", ErrForbidden)
	}
	return group, nil
}

// SendGroupMessage appends a message to a group's history. Sender must be a
// current member.
func (s *ChatService) SendGroupMessage(ctx context.Context, groupID, senderID, content string) (*models.ChatMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("message cannot be empty: %w", ErrValidation)
	}
	group, err := s.memberGroup(ctx, groupID, senderID)
	if err != nil {
		return nil, err
	}

	senderName := group.OwnerName
	if group.OwnerID != senderID {
		for _, m := range group.Members {
			if m.UserID == senderID {
				senderName = m.UserName
				break
			}
		}
	}

	message := &models.ChatMessage{
		ID:         uuid.New().String(),
		GroupID:    groupID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := s.Messages.PutMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return message, nil
}

// GroupMessages returns a group's history, oldest first. Caller must be a
// current member.
func (s *ChatService) GroupMessages(ctx context.Context, groupID, userID string, limit int) ([]models.ChatMessage, error) {
	if _, err := s.memberGroup(ctx, groupID, userID); err != nil {
		return nil, err
	}
	messages, err := s.Messages.ListGroupMessages(ctx, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list group messages: %w", err)
	}
	return messages, nil
}

// SendDirectMessage delivers a message between two friends.
func (s *ChatService) SendDirectMessage(ctx context.Context, fromUserID, fromUserName, toUserID, content string) (*models.ChatMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("message cannot be empty: %w", ErrValidation)
	}
	friends, err := s.Friends.AreFriends(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, fmt.Errorf("you can only send direct messages to friends: %w", ErrForbidden)
	}

	message := &models.ChatMessage{
		ID:          uuid.New().String(),
		RecipientID: toUserID,
		SenderID:    fromUserID,
		SenderName:  fromUserName,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := s.Messages.PutMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return message, nil
}

// DirectMessages returns the conversation between two friends, oldest first.
func (s *ChatService) DirectMessages(ctx context.Context, userID, friendID string) ([]models.ChatMessage, error) {
	friends, err := s.Friends.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, fmt.Errorf("you can only view messages with friends: %w", ErrForbidden)
	}
	messages, err := s.Messages.ListDirectMessages(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct messages: %w", err)
	}
	return messages, nil
}
