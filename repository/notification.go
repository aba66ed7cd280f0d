package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type NotificationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	// GetByUserID returns the user's notifications, newest first, capped at limit.
	GetByUserID(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
	CountUnreadByUserID(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	// MarkAllAsRead flips every unread notification belonging to the user;
	// other users' notifications are untouched.
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
