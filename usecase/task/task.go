package task

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

// View is a task with its cross-entity references resolved for display.
type View struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         domain.TaskStatus    `json:"status"`
	Priority       domain.TaskPriority  `json:"priority"`
	Project        *usecase.ProjectRef  `json:"project,omitempty"`
	AssignedTo     *usecase.UserRef     `json:"assignedTo,omitempty"`
	CreatedBy      usecase.UserRef      `json:"createdBy"`
	DueDate        *time.Time           `json:"dueDate,omitempty"`
	EstimatedHours *float64             `json:"estimatedHours,omitempty"`
	ActualHours    *float64             `json:"actualHours,omitempty"`
	Tags           []string             `json:"tags"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	CompletedAt    *time.Time           `json:"completedAt,omitempty"`
	CommentCount   int                  `json:"commentCount"`
}

// Page is one page of filtered tasks plus pagination totals.
type Page struct {
	Tasks      []View `json:"tasks"`
	TotalCount int    `json:"totalCount"`
	PageNumber int    `json:"pageNumber"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

// CreateInput carries the fields accepted at task creation. Status and
// Priority are raw wire strings; unparseable values fall back to the
// Pending/Medium defaults.
type CreateInput struct {
	Title          string
	Description    string
	Status         string
	Priority       string
	ProjectID      string
	AssignedToID   string
	DueDate        *time.Time
	EstimatedHours *float64
	Tags           []string
}

type UseCase struct {
	tasks         repository.TaskRepository
	users         repository.UserRepository
	projects      repository.ProjectRepository
	comments      repository.CommentRepository
	notifications repository.NotificationRepository
	activity      repository.ActivityRepository
	logger        *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	comments repository.CommentRepository,
	notifications repository.NotificationRepository,
	activity repository.ActivityRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:         tasks,
		users:         users,
		projects:      projects,
		comments:      comments,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

// List returns one page of tasks matching the filter plus totals. The filter
// is permissive: unparseable enum strings and empty fields contribute no
// predicate. Callers are responsible for PageNumber/PageSize >= 1.
func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) (*Page, error) {
	tasks, total, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(tasks))
	for i := range tasks {
		views = append(views, *uc.shape(ctx, &tasks[i]))
	}

	return &Page{
		Tasks:      views,
		TotalCount: total,
		PageNumber: filter.PageNumber,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.shape(ctx, task), nil
}

func (uc *UseCase) GetByProject(ctx context.Context, projectID string) ([]View, error) {
	tasks, err := uc.tasks.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return uc.shapeAll(ctx, tasks), nil
}

func (uc *UseCase) GetByAssignee(ctx context.Context, userID string) ([]View, error) {
	tasks, err := uc.tasks.GetByAssignedUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.shapeAll(ctx, tasks), nil
}

// Search runs a free-text query over title and description, capped at 100
// results.
func (uc *UseCase) Search(ctx context.Context, term string) ([]View, error) {
	filter := repository.TaskFilter{
		SearchTerm:     term,
		PageNumber:     1,
		PageSize:       100,
		SortDescending: true,
	}
	tasks, _, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.shapeAll(ctx, tasks), nil
}

func (uc *UseCase) Overdue(ctx context.Context) ([]View, error) {
	tasks, err := uc.tasks.GetOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return uc.shapeAll(ctx, tasks), nil
}

// History returns the task's audit trail, newest first, with identities
// resolved.
func (uc *UseCase) History(ctx context.Context, taskID string) ([]usecase.ActivityView, error) {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	records, err := uc.activity.GetByTaskID(ctx, taskID)
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

// Create persists a new task, appends a Created audit record and, when the
// task arrives pre-assigned, notifies the assignee. The three writes are
// independent: a failed side-effect write is logged and dropped, never
// compensated.
func (uc *UseCase) Create(ctx context.Context, input CreateInput, createdByID string) (*View, error) {
	status := domain.StatusPending
	if parsed, ok := domain.ParseTaskStatus(input.Status); ok {
		status = parsed
	}
	priority := domain.PriorityMedium
	if parsed, ok := domain.ParseTaskPriority(input.Priority); ok {
		priority = parsed
	}

	task := &domain.Task{
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		ProjectID:      input.ProjectID,
		AssignedToID:   input.AssignedToID,
		CreatedByID:    createdByID,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		Tags:           input.Tags,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, &domain.ActivityRecord{
		TaskID:      created.ID,
		UserID:      createdByID,
		Action:      domain.ActionCreated,
		Description: fmt.Sprintf("Task '%s' created", created.Title),
	})

	if created.AssignedToID != "" {
		uc.notifyAssignment(ctx, created)
	}

	return uc.shape(ctx, created), nil
}

// Update applies a partial update: only non-nil patch fields change the task.
// A status change appends a StatusChanged record; a transition to Completed
// stamps the completion time once and never clears it. An assignee change to
// a non-empty user appends an Assigned record and notifies the new assignee —
// including when users assign tasks to themselves.
func (uc *UseCase) Update(ctx context.Context, id string, patch domain.TaskPatch, userID string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	oldAssignee := task.AssignedToID

	applyPatch(task, patch)

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if oldStatus != task.Status {
		uc.record(ctx, &domain.ActivityRecord{
			TaskID:      task.ID,
			UserID:      userID,
			Action:      domain.ActionStatusChanged,
			Field:       "Status",
			OldValue:    string(oldStatus),
			NewValue:    string(task.Status),
			Description: fmt.Sprintf("Status changed from '%s' to '%s'", oldStatus, task.Status),
		})
	}

	if oldAssignee != task.AssignedToID && task.AssignedToID != "" {
		uc.record(ctx, &domain.ActivityRecord{
			TaskID:      task.ID,
			UserID:      userID,
			Action:      domain.ActionAssigned,
			Field:       "AssignedTo",
			OldValue:    oldAssignee,
			NewValue:    task.AssignedToID,
			Description: "Task reassigned",
		})
		uc.notifyAssignment(ctx, task)
	}

	return uc.shape(ctx, task), nil
}

func (uc *UseCase) Delete(ctx context.Context, id, userID string) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.record(ctx, &domain.ActivityRecord{
		TaskID:      task.ID,
		UserID:      userID,
		Action:      domain.ActionDeleted,
		Description: fmt.Sprintf("Task '%s' deleted", task.Title),
	})
	return nil
}

// applyPatch mutates the task in place. Status transitions to Completed set
// the completion timestamp if absent; moving away from Completed leaves it in
// place.
func applyPatch(task *domain.Task, patch domain.TaskPatch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if status, ok := domain.ParseTaskStatus(*patch.Status); ok {
			task.Status = status
			if status == domain.StatusCompleted && task.CompletedAt == nil {
				now := time.Now()
				task.CompletedAt = &now
			}
		}
	}
	if patch.Priority != nil {
		if priority, ok := domain.ParseTaskPriority(*patch.Priority); ok {
			task.Priority = priority
		}
	}
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.AssignedToID != nil {
		task.AssignedToID = *patch.AssignedToID
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.EstimatedHours != nil {
		task.EstimatedHours = patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		task.ActualHours = patch.ActualHours
	}
	if patch.Tags != nil {
		task.Tags = patch.Tags
	}
}

func (uc *UseCase) notifyAssignment(ctx context.Context, task *domain.Task) {
	_, err := uc.notifications.Create(ctx, &domain.Notification{
		UserID:           task.AssignedToID,
		Title:            "Task assigned",
		Message:          fmt.Sprintf("You have been assigned the task '%s'", task.Title),
		Type:             domain.NotificationTaskAssigned,
		RelatedTaskID:    task.ID,
		RelatedProjectID: task.ProjectID,
	})
	if err != nil {
		uc.logger.Error("failed to create assignment notification",
			zap.String("task_id", task.ID), zap.Error(err))
	}
}

func (uc *UseCase) record(ctx context.Context, record *domain.ActivityRecord) {
	if err := uc.activity.Append(ctx, record); err != nil {
		uc.logger.Error("failed to append activity record",
			zap.String("task_id", record.TaskID),
			zap.String("action", string(record.Action)),
			zap.Error(err))
	}
}

func (uc *UseCase) shapeAll(ctx context.Context, tasks []domain.Task) []View {
	views := make([]View, 0, len(tasks))
	for i := range tasks {
		views = append(views, *uc.shape(ctx, &tasks[i]))
	}
	return views
}

// shape resolves the task's references for display. Any reference that fails
// to resolve degrades to a placeholder; shaping never fails the operation.
func (uc *UseCase) shape(ctx context.Context, task *domain.Task) *View {
	createdBy, _ := uc.users.GetByID(ctx, task.CreatedByID)

	var assignedTo *usecase.UserRef
	if task.AssignedToID != "" {
		if user, err := uc.users.GetByID(ctx, task.AssignedToID); err == nil {
			ref := usecase.UserRefOf(user)
			assignedTo = &ref
		}
	}

	var projectRef *usecase.ProjectRef
	if task.ProjectID != "" {
		if project, err := uc.projects.GetByID(ctx, task.ProjectID); err == nil {
			projectRef = usecase.ProjectRefOf(project)
		}
	}

	commentCount, err := uc.comments.CountByTaskID(ctx, task.ID)
	if err != nil {
		commentCount = 0
	}

	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}

	return &View{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		Project:        projectRef,
		AssignedTo:     assignedTo,
		CreatedBy:      usecase.UserRefOf(createdBy),
		DueDate:        task.DueDate,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		Tags:           tags,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
		CompletedAt:    task.CompletedAt,
		CommentCount:   commentCount,
	}
}
