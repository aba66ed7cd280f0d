// Package report aggregates tasks, projects, users and activity into the
// dashboard, productivity and recent-activity reports. Aggregation happens
// in-process over full collections, which bounds the practical dataset size.
package report

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

const (
	dashboardProjectLimit  = 10
	dashboardActivityLimit = 10
	defaultActivityLimit   = 20
)

// ProjectSummary is one dashboard row for a project.
type ProjectSummary struct {
	ProjectID            string  `json:"projectId"`
	ProjectName          string  `json:"projectName"`
	Color                string  `json:"color"`
	TotalTasks           int     `json:"totalTasks"`
	CompletedTasks       int     `json:"completedTasks"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

// Dashboard is the aggregate snapshot served to the landing view.
type Dashboard struct {
	TotalTasks        int                    `json:"totalTasks"`
	CompletedTasks    int                    `json:"completedTasks"`
	InProgressTasks   int                    `json:"inProgressTasks"`
	PendingTasks      int                    `json:"pendingTasks"`
	OverdueTasks      int                    `json:"overdueTasks"`
	HighPriorityTasks int                    `json:"highPriorityTasks"`
	TotalProjects     int                    `json:"totalProjects"`
	ActiveProjects    int                    `json:"activeProjects"`
	TasksByStatus     map[string]int         `json:"tasksByStatus"`
	TasksByPriority   map[string]int         `json:"tasksByPriority"`
	ProjectSummary    []ProjectSummary       `json:"projectSummary"`
	RecentActivity    []usecase.ActivityView `json:"recentActivity"`
}

// UserProductivity is one user's row in the productivity report.
type UserProductivity struct {
	User                  usecase.UserRef `json:"user"`
	TasksAssigned         int             `json:"tasksAssigned"`
	TasksCompleted        int             `json:"tasksCompleted"`
	AverageCompletionTime float64         `json:"averageCompletionTime"`
	TotalHoursLogged      float64         `json:"totalHoursLogged"`
}

type UseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	activity repository.ActivityRepository
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	activity repository.ActivityRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		projects: projects,
		users:    users,
		activity: activity,
		logger:   logger,
	}
}

// Dashboard builds the full snapshot. Status and priority breakdowns always
// carry every enum value, zero-filled, and sum to the task total.
func (uc *UseCase) Dashboard(ctx context.Context) (*Dashboard, error) {
	tasks, err := uc.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dash := &Dashboard{
		TotalTasks:      len(tasks),
		TasksByStatus:   make(map[string]int, len(domain.TaskStatuses())),
		TasksByPriority: make(map[string]int, len(domain.TaskPriorities())),
		ProjectSummary:  []ProjectSummary{},
		RecentActivity:  []usecase.ActivityView{},
	}
	for _, status := range domain.TaskStatuses() {
		dash.TasksByStatus[string(status)] = 0
	}
	for _, priority := range domain.TaskPriorities() {
		dash.TasksByPriority[string(priority)] = 0
	}

	for i := range tasks {
		dash.TasksByStatus[string(tasks[i].Status)]++
		dash.TasksByPriority[string(tasks[i].Priority)]++
		switch tasks[i].Status {
		case domain.StatusCompleted:
			dash.CompletedTasks++
		case domain.StatusInProgress:
			dash.InProgressTasks++
		case domain.StatusPending:
			dash.PendingTasks++
		}
		if tasks[i].IsOverdue(now) {
			dash.OverdueTasks++
		}
		if tasks[i].Priority == domain.PriorityHigh || tasks[i].Priority == domain.PriorityCritical {
			dash.HighPriorityTasks++
		}
	}

	projects, err := uc.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	dash.TotalProjects = len(projects)
	for i := range projects {
		if projects[i].Status == domain.ProjectActive {
			dash.ActiveProjects++
		}
	}
	// Project counts cover every project; only the summary rows are capped.
	if len(projects) > dashboardProjectLimit {
		projects = projects[:dashboardProjectLimit]
	}
	for i := range projects {
		summary := ProjectSummary{
			ProjectID:   projects[i].ID,
			ProjectName: projects[i].Name,
			Color:       projects[i].Color,
		}
		for j := range tasks {
			if tasks[j].ProjectID != projects[i].ID {
				continue
			}
			summary.TotalTasks++
			if tasks[j].Status == domain.StatusCompleted {
				summary.CompletedTasks++
			}
		}
		if summary.TotalTasks > 0 {
			summary.CompletionPercentage = round2(float64(summary.CompletedTasks) / float64(summary.TotalTasks) * 100)
		}
		dash.ProjectSummary = append(dash.ProjectSummary, summary)
	}

	recent, err := uc.RecentActivity(ctx, dashboardActivityLimit)
	if err != nil {
		return nil, err
	}
	dash.RecentActivity = recent

	return dash, nil
}

// Productivity reports per-user workload, sorted by completed count
// descending. Ties keep the user listing order. Average completion time only
// counts completed tasks that carry a completion timestamp.
func (uc *UseCase) Productivity(ctx context.Context) ([]UserProductivity, error) {
	users, err := uc.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]UserProductivity, 0, len(users))
	for i := range users {
		row := UserProductivity{User: usecase.UserRefOf(&users[i])}

		var completionHours float64
		var timedCompletions int
		for j := range tasks {
			if tasks[j].AssignedToID != users[i].ID {
				continue
			}
			row.TasksAssigned++
			if tasks[j].Status != domain.StatusCompleted {
				continue
			}
			row.TasksCompleted++
			if tasks[j].CompletedAt != nil {
				completionHours += tasks[j].CompletedAt.Sub(tasks[j].CreatedAt).Hours()
				timedCompletions++
			}
			if tasks[j].ActualHours != nil {
				row.TotalHoursLogged += *tasks[j].ActualHours
			}
		}
		if timedCompletions > 0 {
			row.AverageCompletionTime = round2(completionHours / float64(timedCompletions))
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TasksCompleted > rows[j].TasksCompleted
	})
	return rows, nil
}

// RecentActivity returns the newest audit entries with actor and task title
// resolved. Missing references degrade to the Unknown placeholder.
func (uc *UseCase) RecentActivity(ctx context.Context, limit int) ([]usecase.ActivityView, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	records, err := uc.activity.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]usecase.ActivityView, 0, len(records))
	for _, record := range records {
		actor, _ := uc.users.GetByID(ctx, record.UserID)
		title := usecase.UnknownName
		if task, err := uc.tasks.GetByID(ctx, record.TaskID); err == nil {
			title = task.Title
		}
		views = append(views, usecase.ActivityView{
			ID:          record.ID,
			TaskID:      record.TaskID,
			TaskTitle:   title,
			Action:      string(record.Action),
			Description: record.Description,
			User:        usecase.UserRefOf(actor),
			CreatedAt:   record.CreatedAt,
		})
	}
	return views, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
