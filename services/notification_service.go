package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"sportmate_server/models"
)

// NotificationService stores and reads user notifications.
type NotificationService struct {
	Store NotificationStore
}

// NewNotificationService wires the store.
func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{Store: store}
}

// Notify records a notification fire-and-forget: failures are logged and
// never propagate into the operation that emitted them.
func (s *NotificationService) Notify(ctx context.Context, userID, kind, title, body string, data map[string]string) {
	notification := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.Store.PutNotification(ctx, notification); err != nil {
		log.Printf("⚠️ Failed to store %s notification for user %s: %v", kind, userID, err)
	}
}

// List returns the user's notifications, newest first, optionally only the
// unread ones.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.Store.ListNotificationsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if !unreadOnly {
		return notifications, nil
	}
	unread := notifications[:0]
	for _, n := range notifications {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

// MarkRead marks a single notification as read. The caller must own it.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	notification, err := s.Store.GetNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification == nil || notification.UserID != userID {
		return nil, fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}
	notification.Read = true
	if err := s.Store.PutNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	return notification, nil
}

// MarkAllRead marks every notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	notifications, err := s.Store.ListNotificationsFor(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}
	for i := range notifications {
		if notifications[i].Read {
			continue
		}
		notifications[i].Read = true
		if err := s.Store.PutNotification(ctx, &notifications[i]); err != nil {
			return fmt.Errorf("failed to update notification %s: %w", notifications[i].ID, err)
		}
	}
	return nil
}
