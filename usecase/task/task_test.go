package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/repository/memory"
	"github.com/taskhive/backend/usecase"
)

type fixture struct {
	uc            *UseCase
	tasks         *memory.TaskStore
	users         *memory.UserStore
	projects      *memory.ProjectStore
	comments      *memory.CommentStore
	notifications *memory.NotificationStore
	activity      *memory.ActivityStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tasks:         memory.NewTaskStore(),
		users:         memory.NewUserStore(),
		projects:      memory.NewProjectStore(),
		comments:      memory.NewCommentStore(),
		notifications: memory.NewNotificationStore(),
		activity:      memory.NewActivityStore(),
	}
	f.uc = New(f.tasks, f.users, f.projects, f.comments, f.notifications, f.activity, nil)
	return f
}

func (f *fixture) addUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Role:     domain.RoleUser,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCreateAppliesDefaultsAndRecordsActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")

	view, err := f.uc.Create(ctx, CreateInput{
		Title:    "Set up CI",
		Status:   "not-a-status",
		Priority: "not-a-priority",
	}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Status != domain.StatusPending {
		t.Errorf("status = %q, want Pending default", view.Status)
	}
	if view.Priority != domain.PriorityMedium {
		t.Errorf("priority = %q, want Medium default", view.Priority)
	}
	if view.CreatedBy.Username != "creator" {
		t.Errorf("createdBy = %q", view.CreatedBy.Username)
	}

	records, err := f.activity.GetByTaskID(ctx, view.ID)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(records) != 1 || records[0].Action != domain.ActionCreated {
		t.Fatalf("records = %+v, want one Created entry", records)
	}

	count, _ := f.notifications.CountByUserID(ctx, creator.ID)
	if count != 0 {
		t.Errorf("unassigned create produced %d notifications, want 0", count)
	}
}

func TestCreateWithAssigneeNotifiesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")
	assignee := f.addUser(t, "assignee")

	view, err := f.uc.Create(ctx, CreateInput{
		Title:        "Review PR",
		AssignedToID: assignee.ID,
	}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := f.notifications.GetByUserID(ctx, assignee.ID, 50)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("assignee has %d notifications, want 1", len(got))
	}
	if got[0].Type != domain.NotificationTaskAssigned {
		t.Errorf("type = %q, want TaskAssigned", got[0].Type)
	}
	if got[0].RelatedTaskID != view.ID {
		t.Errorf("relatedTaskId = %q, want %q", got[0].RelatedTaskID, view.ID)
	}
}

func TestUpdateToCompletedStampsCompletionOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")

	view, err := f.uc.Create(ctx, CreateInput{Title: "Ship it"}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	completed := string(domain.StatusCompleted)
	updated, err := f.uc.Update(ctx, view.ID, domain.TaskPatch{Status: &completed}, creator.ID)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("CompletedAt not stamped on transition to Completed")
	}
	first := *updated.CompletedAt

	// Moving away and back must not reset the original timestamp.
	pending := string(domain.StatusPending)
	if _, err := f.uc.Update(ctx, view.ID, domain.TaskPatch{Status: &pending}, creator.ID); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := f.uc.Update(ctx, view.ID, domain.TaskPatch{Status: &completed}, creator.ID)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if again.CompletedAt == nil || !again.CompletedAt.Equal(first) {
		t.Errorf("CompletedAt changed on re-completion: %v != %v", again.CompletedAt, first)
	}

	records, _ := f.activity.GetByTaskID(ctx, view.ID)
	statusChanges := 0
	for _, record := range records {
		if record.Action == domain.ActionStatusChanged {
			statusChanges++
			if record.Field != "Status" {
				t.Errorf("field = %q, want Status", record.Field)
			}
		}
	}
	if statusChanges != 3 {
		t.Errorf("status change records = %d, want 3", statusChanges)
	}
}

func TestUpdateReassignmentNotifiesEvenSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")

	view, err := f.uc.Create(ctx, CreateInput{Title: "Tidy backlog"}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Self-assignment still produces a notification.
	self := creator.ID
	if _, err := f.uc.Update(ctx, view.ID, domain.TaskPatch{AssignedToID: &self}, creator.ID); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := f.notifications.GetByUserID(ctx, creator.ID, 50)
	if len(got) != 1 {
		t.Fatalf("self-assignment produced %d notifications, want 1", len(got))
	}

	records, _ := f.activity.GetByTaskID(ctx, view.ID)
	assigned := 0
	for _, record := range records {
		if record.Action == domain.ActionAssigned {
			assigned++
		}
	}
	if assigned != 1 {
		t.Errorf("assigned records = %d, want 1", assigned)
	}
}

func TestUpdateUnassignmentIsSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")
	assignee := f.addUser(t, "assignee")

	view, err := f.uc.Create(ctx, CreateInput{Title: "T", AssignedToID: assignee.ID}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	empty := ""
	if _, err := f.uc.Update(ctx, view.ID, domain.TaskPatch{AssignedToID: &empty}, creator.ID); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Only the original assignment notification exists.
	got, _ := f.notifications.GetByUserID(ctx, assignee.ID, 50)
	if len(got) != 1 {
		t.Errorf("unassignment added notifications: %d total, want 1", len(got))
	}
	records, _ := f.activity.GetByTaskID(ctx, view.ID)
	for _, record := range records {
		if record.Action == domain.ActionAssigned {
			t.Error("unassignment must not append an Assigned record")
		}
	}
}

func TestListComputesPageTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")

	for i := 0; i < 5; i++ {
		input := CreateInput{Title: fmt.Sprintf("task-%d", i), Status: string(domain.StatusInProgress)}
		if _, err := f.uc.Create(ctx, input, creator.ID); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, err := f.uc.List(ctx, repository.TaskFilter{
		Status:     string(domain.StatusInProgress),
		PageNumber: 1,
		PageSize:   2,
		SortBy:     "CreatedAt",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Tasks) != 2 {
		t.Errorf("page length = %d, want 2", len(page.Tasks))
	}
	if page.TotalCount != 5 {
		t.Errorf("totalCount = %d, want 5", page.TotalCount)
	}
	if page.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", page.TotalPages)
	}
}

func TestViewResolvesMissingCreatorToUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.uc.Create(ctx, CreateInput{Title: "Orphan"}, "ghost-user")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.CreatedBy.Username != usecase.UnknownName || view.CreatedBy.FullName != usecase.UnknownName {
		t.Errorf("missing creator resolved to %+v, want Unknown placeholders", view.CreatedBy)
	}
}

func TestDeleteRecordsActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")

	view, err := f.uc.Create(ctx, CreateInput{Title: "Doomed"}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.uc.Delete(ctx, view.ID, creator.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := f.tasks.GetByID(ctx, view.ID); err == nil {
		t.Error("task still present after delete")
	}

	records, _ := f.activity.GetByTaskID(ctx, view.ID)
	deleted := false
	for _, record := range records {
		if record.Action == domain.ActionDeleted {
			deleted = true
		}
	}
	if !deleted {
		t.Error("no Deleted activity record appended")
	}

	// The audit trail for the removed task survives deletion.
	if len(records) < 2 {
		t.Errorf("audit trail truncated: %d records", len(records))
	}
}

func TestHistoryResolvesActorsAndTitles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")

	view, err := f.uc.Create(ctx, CreateInput{Title: "Traceable"}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	history, err := f.uc.History(ctx, view.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].TaskTitle != "Traceable" {
		t.Errorf("taskTitle = %q", history[0].TaskTitle)
	}
	if history[0].User.Username != "creator" {
		t.Errorf("actor = %q", history[0].User.Username)
	}

	if _, err := f.uc.History(ctx, "missing"); err == nil {
		t.Error("History on a missing task should fail")
	}
}

func TestOverdueExcludesClosedTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "creator")

	past := time.Now().Add(-24 * time.Hour)
	open, err := f.uc.Create(ctx, CreateInput{Title: "open late", DueDate: &past}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	done, err := f.uc.Create(ctx, CreateInput{Title: "done late", DueDate: &past}, creator.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	completed := string(domain.StatusCompleted)
	if _, err := f.uc.Update(ctx, done.ID, domain.TaskPatch{Status: &completed}, creator.ID); err != nil {
		t.Fatalf("Update: %v", err)
	}

	overdue, err := f.uc.Overdue(ctx)
	if err != nil {
		t.Fatalf("Overdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != open.ID {
		t.Errorf("overdue = %d tasks, want only the open one", len(overdue))
	}
}
