package user

import (
	"context"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type UseCase struct {
	users repository.UserRepository
}

func New(users repository.UserRepository) *UseCase {
	return &UseCase{users: users}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) GetAll(ctx context.Context) ([]domain.User, error) {
	return uc.users.GetAll(ctx)
}
