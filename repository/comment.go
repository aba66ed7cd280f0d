package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type CommentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	// GetByTaskID returns the task's comments, newest first.
	GetByTaskID(ctx context.Context, taskID string) ([]domain.Comment, error)
	CountByTaskID(ctx context.Context, taskID string) (int, error)
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	// Update persists new content and sets the edited flag.
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
}
