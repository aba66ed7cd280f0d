package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetAll(ctx context.Context) ([]domain.Project, error)
	// GetByMemberID returns projects the user belongs to, owned projects
	// included whether or not the owner appears in the member list.
	GetByMemberID(ctx context.Context, userID string) ([]domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}
