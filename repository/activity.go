package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// ActivityRepository is append-only: records are never mutated or deleted.
type ActivityRepository interface {
	Append(ctx context.Context, record *domain.ActivityRecord) error
	// Recent returns the newest records across all tasks, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ActivityRecord, error)
	GetByTaskID(ctx context.Context, taskID string) ([]domain.ActivityRecord, error)
}
