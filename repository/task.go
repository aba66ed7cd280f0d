package repository

import (
	"context"
	"time"

	"github.com/taskhive/backend/domain"
)

// TaskFilter is a conjunction of optional predicates. Zero-valued fields
// contribute no predicate, so the empty filter matches every task. Status,
// Priority and SortBy carry raw wire strings: unparseable enum values are
// ignored and unknown sort fields fall back to creation time.
type TaskFilter struct {
	Status         string
	Priority       string
	ProjectID      string
	AssignedToID   string
	SearchTerm     string
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	PageNumber     int
	PageSize       int
	SortBy         string
	SortDescending bool
}

// Offset converts the 1-based page number into a row offset. Callers must
// supply PageNumber >= 1; the store does not defend against negative offsets.
func (f TaskFilter) Offset() int {
	return (f.PageNumber - 1) * f.PageSize
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetAll(ctx context.Context) ([]domain.Task, error)
	// List returns one page of matches plus the total match count ignoring
	// pagination.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, int, error)
	GetByProjectID(ctx context.Context, projectID string) ([]domain.Task, error)
	GetByAssignedUserID(ctx context.Context, userID string) ([]domain.Task, error)
	// GetOverdue returns tasks due strictly before now whose status is
	// neither Completed nor Cancelled.
	GetOverdue(ctx context.Context, now time.Time) ([]domain.Task, error)
	// CountByStatus returns one entry per status, zeros included.
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error)
	// CountByPriority returns one entry per priority, zeros included.
	CountByPriority(ctx context.Context) (map[domain.TaskPriority]int, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
