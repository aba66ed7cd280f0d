package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository/memory"
)

type fixture struct {
	uc            *UseCase
	tasks         *memory.TaskStore
	users         *memory.UserStore
	comments      *memory.CommentStore
	notifications *memory.NotificationStore
	activity      *memory.ActivityStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tasks:         memory.NewTaskStore(),
		users:         memory.NewUserStore(),
		comments:      memory.NewCommentStore(),
		notifications: memory.NewNotificationStore(),
		activity:      memory.NewActivityStore(),
	}
	f.uc = New(f.comments, f.tasks, f.users, f.notifications, f.activity, nil)
	return f
}

func (f *fixture) addUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), &domain.User{
		Username: username, Email: username + "@example.com", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *fixture) addTask(t *testing.T, creatorID, assigneeID string) *domain.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), &domain.Task{
		Title:        "Discussed task",
		Status:       domain.StatusInProgress,
		Priority:     domain.PriorityMedium,
		CreatedByID:  creatorID,
		AssignedToID: assigneeID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestCreateNotifiesCreatorAndAssignee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")
	assignee := f.addUser(t, "assignee")
	author := f.addUser(t, "author")
	task := f.addTask(t, creator.ID, assignee.ID)

	view, err := f.uc.Create(ctx, task.ID, author.ID, "looks good")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.User.Username != "author" {
		t.Errorf("resolved author = %q", view.User.Username)
	}

	for _, userID := range []string{creator.ID, assignee.ID} {
		got, _ := f.notifications.GetByUserID(ctx, userID, 50)
		if len(got) != 1 {
			t.Fatalf("user %s has %d notifications, want 1", userID, len(got))
		}
		if got[0].Type != domain.NotificationCommentAdded {
			t.Errorf("type = %q, want CommentAdded", got[0].Type)
		}
	}
	authorGot, _ := f.notifications.GetByUserID(ctx, author.ID, 50)
	if len(authorGot) != 0 {
		t.Errorf("author notified about their own comment: %d", len(authorGot))
	}

	records, _ := f.activity.GetByTaskID(ctx, task.ID)
	if len(records) != 1 || records[0].Action != domain.ActionCommented {
		t.Errorf("records = %+v, want one Commented entry", records)
	}
}

func TestCreateDeduplicatesCreatorWhoIsAssignee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	author := f.addUser(t, "author")
	task := f.addTask(t, owner.ID, owner.ID)

	if _, err := f.uc.Create(ctx, task.ID, author.ID, "ping"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _ := f.notifications.GetByUserID(ctx, owner.ID, 50)
	if len(got) != 1 {
		t.Errorf("creator-assignee received %d notifications, want 1", len(got))
	}
}

func TestCreateSuppressesSelfNotificationEntirely(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	task := f.addTask(t, owner.ID, owner.ID)

	if _, err := f.uc.Create(ctx, task.ID, owner.ID, "note to self"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _ := f.notifications.GetByUserID(ctx, owner.ID, 50)
	if len(got) != 0 {
		t.Errorf("self-comment produced %d notifications, want 0", len(got))
	}
}

func TestCreateOnMissingTaskFails(t *testing.T) {
	f := newFixture(t)
	author := f.addUser(t, "author")

	if _, err := f.uc.Create(context.Background(), "missing", author.ID, "?"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want task not found", err)
	}
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	author := f.addUser(t, "author")
	other := f.addUser(t, "other")
	task := f.addTask(t, owner.ID, "")

	view, err := f.uc.Create(ctx, task.ID, author.ID, "original")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.uc.Update(ctx, view.ID, other.ID, "hijacked"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Errorf("foreign update err = %v, want comment not found", err)
	}

	updated, err := f.uc.Update(ctx, view.ID, author.ID, "edited")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsEdited {
		t.Error("edited flag not set")
	}
	if updated.Content != "edited" {
		t.Errorf("content = %q", updated.Content)
	}
}

func TestDeleteOnlyByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	author := f.addUser(t, "author")
	other := f.addUser(t, "other")
	task := f.addTask(t, owner.ID, "")

	view, err := f.uc.Create(ctx, task.ID, author.ID, "to delete")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.uc.Delete(ctx, view.ID, other.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Errorf("foreign delete err = %v, want comment not found", err)
	}
	if err := f.uc.Delete(ctx, view.ID, author.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	remaining, _ := f.comments.GetByTaskID(ctx, task.ID)
	if len(remaining) != 0 {
		t.Errorf("comment still present after delete")
	}
}
