// Package bootstrap seeds the initial accounts and demo data. The seed is
// idempotent: it only runs when the admin account does not exist yet.
package bootstrap

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/repository"
)

func Seed(
	ctx context.Context,
	cfg config.SeedConfig,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	logger *zap.Logger,
) error {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	exists, err := users.ExistsByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin, err := users.Create(ctx, &domain.User{
		Username:     cfg.AdminUsername,
		Email:        "admin@taskhive.local",
		PasswordHash: string(adminHash),
		FullName:     "Administrator",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return err
	}

	demoHash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demo, err := users.Create(ctx, &domain.User{
		Username:     "demo",
		Email:        "demo@taskhive.local",
		PasswordHash: string(demoHash),
		FullName:     "Demo User",
		Role:         domain.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		return err
	}

	if _, err := projects.Create(ctx, &domain.Project{
		Name:        "Getting Started",
		Description: "A sample project to explore the workspace",
		Status:      domain.ProjectActive,
		OwnerID:     admin.ID,
		MemberIDs:   []string{demo.ID},
		Color:       domain.DefaultProjectColor,
	}); err != nil {
		return err
	}

	logger.Info("seeded initial data",
		zap.String("admin", cfg.AdminUsername),
		zap.String("demo", demo.Username))
	return nil
}
