package project

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

// Stats summarizes the project's tasks, computed at read time.
type Stats struct {
	TotalTasks           int     `json:"totalTasks"`
	CompletedTasks       int     `json:"completedTasks"`
	PendingTasks         int     `json:"pendingTasks"`
	InProgressTasks      int     `json:"inProgressTasks"`
	OverdueTasks         int     `json:"overdueTasks"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

// View is a project with owner/member identities resolved and task stats
// attached.
type View struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	Owner       usecase.UserRef      `json:"owner"`
	Members     []usecase.UserRef    `json:"members"`
	StartDate   *time.Time           `json:"startDate,omitempty"`
	EndDate     *time.Time           `json:"endDate,omitempty"`
	Color       string               `json:"color"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Stats       Stats                `json:"stats"`
}

// CreateInput carries the fields accepted at project creation.
type CreateInput struct {
	Name        string
	Description string
	MemberIDs   []string
	StartDate   *time.Time
	EndDate     *time.Time
	Color       string
}

type UseCase struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	tasks    repository.TaskRepository
	logger   *zap.Logger
}

func New(
	projects repository.ProjectRepository,
	users repository.UserRepository,
	tasks repository.TaskRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		projects: projects,
		users:    users,
		tasks:    tasks,
		logger:   logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*View, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.shape(ctx, project), nil
}

func (uc *UseCase) GetAll(ctx context.Context) ([]View, error) {
	projects, err := uc.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.shapeAll(ctx, projects), nil
}

// GetByUser returns the projects the user belongs to; ownership counts as
// membership.
func (uc *UseCase) GetByUser(ctx context.Context, userID string) ([]View, error) {
	projects, err := uc.projects.GetByMemberID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.shapeAll(ctx, projects), nil
}

func (uc *UseCase) Create(ctx context.Context, input CreateInput, ownerID string) (*View, error) {
	color := input.Color
	if color == "" {
		color = domain.DefaultProjectColor
	}

	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.ProjectActive,
		OwnerID:     ownerID,
		MemberIDs:   input.MemberIDs,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Color:       color,
	}

	created, err := uc.projects.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	return uc.shape(ctx, created), nil
}

// Update applies a partial update; only non-nil patch fields change the
// project. Unparseable status strings are ignored.
func (uc *UseCase) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*View, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		if status, ok := domain.ParseProjectStatus(*patch.Status); ok {
			project.Status = status
		}
	}
	if patch.StartDate != nil {
		project.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		project.EndDate = patch.EndDate
	}
	if patch.Color != nil {
		project.Color = *patch.Color
	}
	if patch.MemberIDs != nil {
		project.MemberIDs = patch.MemberIDs
	}

	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return uc.shape(ctx, project), nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.projects.Delete(ctx, id)
}

func (uc *UseCase) shapeAll(ctx context.Context, projects []domain.Project) []View {
	views := make([]View, 0, len(projects))
	for i := range projects {
		views = append(views, *uc.shape(ctx, &projects[i]))
	}
	return views
}

func (uc *UseCase) shape(ctx context.Context, project *domain.Project) *View {
	owner, _ := uc.users.GetByID(ctx, project.OwnerID)

	members := make([]usecase.UserRef, 0, len(project.MemberIDs))
	for _, memberID := range project.MemberIDs {
		if member, err := uc.users.GetByID(ctx, memberID); err == nil {
			members = append(members, usecase.UserRefOf(member))
		}
	}

	return &View{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Owner:       usecase.UserRefOf(owner),
		Members:     members,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		Color:       project.Color,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		Stats:       uc.stats(ctx, project.ID),
	}
}

// stats counts the project's tasks in-process; a failed task query degrades
// to zeroed stats rather than failing the read.
func (uc *UseCase) stats(ctx context.Context, projectID string) Stats {
	tasks, err := uc.tasks.GetByProjectID(ctx, projectID)
	if err != nil {
		uc.logger.Warn("failed to load project tasks for stats",
			zap.String("project_id", projectID), zap.Error(err))
		return Stats{}
	}

	now := time.Now()
	stats := Stats{TotalTasks: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case domain.StatusCompleted:
			stats.CompletedTasks++
		case domain.StatusPending:
			stats.PendingTasks++
		case domain.StatusInProgress:
			stats.InProgressTasks++
		}
		if tasks[i].DueDate != nil && tasks[i].DueDate.Before(now) && tasks[i].Status != domain.StatusCompleted {
			stats.OverdueTasks++
		}
	}
	if stats.TotalTasks > 0 {
		stats.CompletionPercentage = math.Round(float64(stats.CompletedTasks)/float64(stats.TotalTasks)*100*100) / 100
	}
	return stats
}
