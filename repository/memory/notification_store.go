package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/backend/domain"
)

// NotificationStore is an in-memory NotificationRepository.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]*domain.Notification
	order         []string
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{notifications: make(map[string]*domain.Notification)}
}

func (s *NotificationStore) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notification, ok := s.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	clone := *notification
	return &clone, nil
}

func (s *NotificationStore) GetByUserID(_ context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	var notifications []domain.Notification
	for _, id := range s.order {
		if n := s.notifications[id]; n != nil && n.UserID == userID {
			notifications = append(notifications, *n)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[j].CreatedAt.Before(notifications[i].CreatedAt)
	})
	if len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (s *NotificationStore) CountByUserID(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *NotificationStore) CountUnreadByUserID(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *NotificationStore) Create(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if notification == nil {
		return nil, domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	clone := *notification
	s.notifications[notification.ID] = &clone
	s.order = append(s.order, notification.ID)
	return notification, nil
}

func (s *NotificationStore) MarkAsRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification, ok := s.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	notification.IsRead = true
	return nil
}

func (s *NotificationStore) MarkAllAsRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}
	return nil
}

func (s *NotificationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notifications[id]; !ok {
		return domain.ErrNotificationNotFound
	}
	delete(s.notifications, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
