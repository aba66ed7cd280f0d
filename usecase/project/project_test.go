package project

import (
	"context"
	"testing"
	"time"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository/memory"
)

type fixture struct {
	uc       *UseCase
	projects *memory.ProjectStore
	users    *memory.UserStore
	tasks    *memory.TaskStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		projects: memory.NewProjectStore(),
		users:    memory.NewUserStore(),
		tasks:    memory.NewTaskStore(),
	}
	f.uc = New(f.projects, f.users, f.tasks, nil)
	return f
}

func (f *fixture) addUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), &domain.User{
		Username: username, Email: username + "@example.com", FullName: username, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCreateAppliesDefaults(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner")

	view, err := f.uc.Create(context.Background(), CreateInput{Name: "Apollo"}, owner.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Status != domain.ProjectActive {
		t.Errorf("status = %q, want Active", view.Status)
	}
	if view.Color != domain.DefaultProjectColor {
		t.Errorf("color = %q, want default", view.Color)
	}
	if view.Owner.Username != "owner" {
		t.Errorf("owner = %q", view.Owner.Username)
	}
}

func TestStatsComputedFromTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")

	view, err := f.uc.Create(ctx, CreateInput{Name: "Apollo"}, owner.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	seed := []*domain.Task{
		{Title: "done", Status: domain.StatusCompleted, Priority: domain.PriorityLow, ProjectID: view.ID},
		{Title: "doing", Status: domain.StatusInProgress, Priority: domain.PriorityLow, ProjectID: view.ID},
		{Title: "todo late", Status: domain.StatusPending, Priority: domain.PriorityLow, ProjectID: view.ID, DueDate: &past},
		// Cancelled past-due still counts as overdue in project stats.
		{Title: "cancelled late", Status: domain.StatusCancelled, Priority: domain.PriorityLow, ProjectID: view.ID, DueDate: &past},
	}
	for _, task := range seed {
		if _, err := f.tasks.Create(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	got, err := f.uc.Get(ctx, view.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	stats := got.Stats
	if stats.TotalTasks != 4 {
		t.Errorf("totalTasks = %d", stats.TotalTasks)
	}
	if stats.CompletedTasks != 1 || stats.InProgressTasks != 1 || stats.PendingTasks != 1 {
		t.Errorf("breakdown = %d/%d/%d", stats.CompletedTasks, stats.InProgressTasks, stats.PendingTasks)
	}
	if stats.OverdueTasks != 2 {
		t.Errorf("overdueTasks = %d, want 2", stats.OverdueTasks)
	}
	if stats.CompletionPercentage != 25 {
		t.Errorf("completionPercentage = %v, want 25", stats.CompletionPercentage)
	}
}

func TestGetByUserIncludesOwnedProjects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	member := f.addUser(t, "member")
	outsider := f.addUser(t, "outsider")

	if _, err := f.uc.Create(ctx, CreateInput{Name: "Apollo", MemberIDs: []string{member.ID}}, owner.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, tc := range []struct {
		userID string
		want   int
	}{
		{owner.ID, 1},
		{member.ID, 1},
		{outsider.ID, 0},
	} {
		got, err := f.uc.GetByUser(ctx, tc.userID)
		if err != nil {
			t.Fatalf("GetByUser: %v", err)
		}
		if len(got) != tc.want {
			t.Errorf("GetByUser(%s) = %d projects, want %d", tc.userID, len(got), tc.want)
		}
	}
}

func TestUpdateIgnoresUnparseableStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")

	view, err := f.uc.Create(ctx, CreateInput{Name: "Apollo"}, owner.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bogus := "NotAStatus"
	name := "Artemis"
	updated, err := f.uc.Update(ctx, view.ID, domain.ProjectPatch{Status: &bogus, Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.ProjectActive {
		t.Errorf("status changed to %q on unparseable input", updated.Status)
	}
	if updated.Name != "Artemis" {
		t.Errorf("name = %q, want Artemis", updated.Name)
	}
}

func TestMembersResolveAndSkipMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	member := f.addUser(t, "member")

	view, err := f.uc.Create(ctx, CreateInput{
		Name:      "Apollo",
		MemberIDs: []string{member.ID, "ghost"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(view.Members) != 1 || view.Members[0].Username != "member" {
		t.Errorf("members = %+v, want only the resolvable one", view.Members)
	}
}
