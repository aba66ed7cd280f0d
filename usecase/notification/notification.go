package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// listLimit caps how many notifications a single listing returns.
const listLimit = 50

type UseCase struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func New(notifications repository.NotificationRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{notifications: notifications, logger: logger}
}

// List returns the user's notifications newest first, at most 50.
func (uc *UseCase) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return uc.notifications.GetByUserID(ctx, userID, listLimit)
}

// Counts is the unread/total pair served by the count endpoint.
type Counts struct {
	UnreadCount int `json:"unreadCount"`
	TotalCount  int `json:"totalCount"`
}

// GetCounts returns how many of the user's notifications are unread alongside
// the total held for them.
func (uc *UseCase) GetCounts(ctx context.Context, userID string) (*Counts, error) {
	unread, err := uc.notifications.CountUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := uc.notifications.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Counts{UnreadCount: unread, TotalCount: total}, nil
}

// MarkAsRead marks one notification read. Only the owner may do so; anyone
// else sees the notification as missing.
func (uc *UseCase) MarkAsRead(ctx context.Context, id, requesterID string) error {
	notification, err := uc.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification.UserID != requesterID {
		return domain.ErrNotificationNotFound
	}
	return uc.notifications.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks every unread notification of the user read.
func (uc *UseCase) MarkAllAsRead(ctx context.Context, userID string) error {
	return uc.notifications.MarkAllAsRead(ctx, userID)
}

// Delete removes one notification. Only the owner may do so.
func (uc *UseCase) Delete(ctx context.Context, id, requesterID string) error {
	notification, err := uc.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification.UserID != requesterID {
		return domain.ErrNotificationNotFound
	}
	return uc.notifications.Delete(ctx, id)
}
