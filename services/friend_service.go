package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sportmate_server/models"
)

// FriendService manages the symmetric friendship relation that gates direct
// messaging.
type FriendService struct {
	Friends       FriendStore
	Users         UserStore
	Notifications *NotificationService
}

// NewFriendService wires the stores.
func NewFriendService(friends FriendStore, users UserStore, notifications *NotificationService) *FriendService {
	return &FriendService{Friends: friends, Users: users, Notifications: notifications}
}

// SendRequest creates a pending friend request between two existing users.
func (s *FriendService) SendRequest(ctx context.Context, fromUserID, toUserID string) (*models.FriendRequest, error) {
	if fromUserID == toUserID {
		return nil, fmt.Errorf("cannot befriend yourself: %w", ErrValidation)
	}
	from, err := s.Friends.GetFriendRequestBetween(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing request: %w", err)
	}
	if from != nil {
		return nil, fmt.Errorf("friend request already exists or you are already friends: %w", ErrConflict)
	}

	sender, err := s.Users.GetUser(ctx, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sender: %w", err)
	}
	if sender == nil {
		return nil, fmt.Errorf("sender %s: %w", fromUserID, ErrNotFound)
	}
	recipient, err := s.Users.GetUser(ctx, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if recipient == nil {
		return nil, fmt.Errorf("recipient %s: %w", toUserID, ErrNotFound)
	}

	request := &models.FriendRequest{
		ID:           uuid.New().String(),
		FromUserID:   sender.ID,
		FromUserName: sender.Name,
		ToUserID:     recipient.ID,
		ToUserName:   recipient.Name,
		Status:       models.FriendStatusPending,
		CreatedAt:    time.Now(),
	}
	if err := s.Friends.PutFriendRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to store friend request: %w", err)
	}

	s.Notifications.Notify(ctx, toUserID, models.NotificationFriendRequest,
		"New Friend Request",
		fmt.Sprintf("%s sent you a friend request", sender.Name),
		map[string]string{"from_user_id": fromUserID, "request_id": request.ID})

	return request, nil
}

// Accept turns a pending request into a friendship. Only the recipient may
// accept.
func (s *FriendService) Accept(ctx context.Context, requestID, userID string) (*models.FriendRequest, error) {
	request, err := s.Friends.GetFriendRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("friend request %s: %w", requestID, ErrNotFound)
	}
	if request.ToUserID != userID {
		return nil, fmt.Errorf("only the recipient can accept a friend request: %w", ErrForbidden)
	}
	if request.Status != models.FriendStatusPending {
		return nil, fmt.Errorf("friend request already handled: %w", ErrConflict)
	}

	now := time.Now()
	request.Status = models.FriendStatusAccepted
	request.AcceptedAt = &now
	if err := s.Friends.PutFriendRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to store friend request: %w", err)
	}

	s.Notifications.Notify(ctx, request.FromUserID, models.NotificationFriendAccepted,
		"Friend Request Accepted!",
		fmt.Sprintf("%s accepted your friend request", request.ToUserName),
		map[string]string{"friend_id": userID})

	return request, nil
}

// PendingFor returns requests still waiting on the user's decision.
func (s *FriendService) PendingFor(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	requests, err := s.Friends.ListFriendRequestsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	pending := requests[:0]
	for _, r := range requests {
		if r.Status == models.FriendStatusPending && r.ToUserID == userID {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// FriendsOf returns the accepted friendships of the user.
func (s *FriendService) FriendsOf(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	requests, err := s.Friends.ListFriendRequestsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	friends := requests[:0]
	for _, r := range requests {
		if r.Status == models.FriendStatusAccepted {
			friends = append(friends, r)
		}
	}
	return friends, nil
}

// AreFriends reports whether an accepted friendship links the two users in
// either direction.
func (s *FriendService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	request, err := s.Friends.GetFriendRequestBetween(ctx, a, b)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return request != nil && request.Status == models.FriendStatusAccepted, nil
}
