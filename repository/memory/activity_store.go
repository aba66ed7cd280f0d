package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/backend/domain"
)

// ActivityStore is an in-memory ActivityRepository. Append-only.
type ActivityStore struct {
	mu      sync.RWMutex
	records []domain.ActivityRecord
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

func (s *ActivityStore) Append(_ context.Context, record *domain.ActivityRecord) error {
	if record == nil {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	s.records = append(s.records, *record)
	return nil
}

func (s *ActivityStore) Recent(_ context.Context, limit int) ([]domain.ActivityRecord, error) {
	s.mu.RLock()
	records := append([]domain.ActivityRecord(nil), s.records...)
	s.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[j].CreatedAt.Before(records[i].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *ActivityStore) GetByTaskID(_ context.Context, taskID string) ([]domain.ActivityRecord, error) {
	s.mu.RLock()
	var records []domain.ActivityRecord
	for _, record := range s.records {
		if record.TaskID == taskID {
			records = append(records, record)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[j].CreatedAt.Before(records[i].CreatedAt)
	})
	return records, nil
}
