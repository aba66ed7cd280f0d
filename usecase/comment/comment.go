package comment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

// View is a comment with its author resolved.
type View struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"taskId"`
	User      usecase.UserRef `json:"user"`
	Content   string          `json:"content"`
	IsEdited  bool            `json:"isEdited"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type UseCase struct {
	comments      repository.CommentRepository
	tasks         repository.TaskRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	activity      repository.ActivityRepository
	logger        *zap.Logger
}

func New(
	comments repository.CommentRepository,
	tasks repository.TaskRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	activity repository.ActivityRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		comments:      comments,
		tasks:         tasks,
		users:         users,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

// GetByTask returns the task's comments newest first.
func (uc *UseCase) GetByTask(ctx context.Context, taskID string) ([]View, error) {
	comments, err := uc.comments.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(comments))
	for i := range comments {
		views = append(views, *uc.shape(ctx, &comments[i]))
	}
	return views, nil
}

// Get returns a single comment by id.
func (uc *UseCase) Get(ctx context.Context, id string) (*View, error) {
	comment, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.shape(ctx, comment), nil
}

// Create attaches a comment to an existing task, records the commented
// activity, and notifies the task's creator and assignee. The author never
// notifies themselves and nobody is notified twice.
func (uc *UseCase) Create(ctx context.Context, taskID, authorID, content string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		TaskID:  taskID,
		UserID:  authorID,
		Content: content,
	}
	created, err := uc.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	authorName := "Someone"
	if author, err := uc.users.GetByID(ctx, authorID); err == nil {
		authorName = author.Username
	}

	uc.record(ctx, &domain.ActivityRecord{
		TaskID:      taskID,
		UserID:      authorID,
		Action:      domain.ActionCommented,
		Description: fmt.Sprintf("%s commented on the task", authorName),
	})

	recipients := make(map[string]struct{}, 2)
	if task.CreatedByID != "" && task.CreatedByID != authorID {
		recipients[task.CreatedByID] = struct{}{}
	}
	if task.AssignedToID != "" && task.AssignedToID != authorID {
		recipients[task.AssignedToID] = struct{}{}
	}
	for recipientID := range recipients {
		notification := &domain.Notification{
			UserID:        recipientID,
			Title:         "New comment",
			Message:       fmt.Sprintf("%s commented on '%s'", authorName, task.Title),
			Type:          domain.NotificationCommentAdded,
			RelatedTaskID: taskID,
		}
		if _, err := uc.notifications.Create(ctx, notification); err != nil {
			uc.logger.Error("failed to create comment notification",
				zap.String("user_id", recipientID), zap.Error(err))
		}
	}

	return uc.shape(ctx, created), nil
}

// Update edits a comment's content. Only the author may edit; anyone else
// sees the comment as missing.
func (uc *UseCase) Update(ctx context.Context, id, requesterID, content string) (*View, error) {
	comment, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != requesterID {
		return nil, domain.ErrCommentNotFound
	}

	comment.Content = content
	comment.IsEdited = true
	if err := uc.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return uc.shape(ctx, comment), nil
}

// Delete removes a comment. Only the author may delete; anyone else sees the
// comment as missing.
func (uc *UseCase) Delete(ctx context.Context, id, requesterID string) error {
	comment, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return domain.ErrCommentNotFound
	}
	return uc.comments.Delete(ctx, id)
}

func (uc *UseCase) record(ctx context.Context, record *domain.ActivityRecord) {
	if err := uc.activity.Append(ctx, record); err != nil {
		uc.logger.Error("failed to append activity record",
			zap.String("task_id", record.TaskID), zap.Error(err))
	}
}

func (uc *UseCase) shape(ctx context.Context, comment *domain.Comment) *View {
	author, _ := uc.users.GetByID(ctx, comment.UserID)
	return &View{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		User:      usecase.UserRefOf(author),
		Content:   comment.Content,
		IsEdited:  comment.IsEdited,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
