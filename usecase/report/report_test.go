package report

import (
	"context"
	"testing"
	"time"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository/memory"
)

type fixture struct {
	uc       *UseCase
	tasks    *memory.TaskStore
	projects *memory.ProjectStore
	users    *memory.UserStore
	activity *memory.ActivityStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tasks:    memory.NewTaskStore(),
		projects: memory.NewProjectStore(),
		users:    memory.NewUserStore(),
		activity: memory.NewActivityStore(),
	}
	f.uc = New(f.tasks, f.projects, f.users, f.activity, nil)
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

func (f *fixture) addTask(t *testing.T, task *domain.Task) *domain.Task {
	t.Helper()
	created, err := f.tasks.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return created
}

func TestDashboardEmptyStateCarriesFullBreakdowns(t *testing.T) {
	f := newFixture(t)

	dash, err := f.uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.TotalTasks != 0 || dash.OverdueTasks != 0 {
		t.Errorf("empty store: totals = %d/%d, want zeros", dash.TotalTasks, dash.OverdueTasks)
	}
	if len(dash.TasksByStatus) != len(domain.TaskStatuses()) {
		t.Errorf("status breakdown has %d entries, want %d", len(dash.TasksByStatus), len(domain.TaskStatuses()))
	}
	if len(dash.TasksByPriority) != len(domain.TaskPriorities()) {
		t.Errorf("priority breakdown has %d entries, want %d", len(dash.TasksByPriority), len(domain.TaskPriorities()))
	}
	for status, count := range dash.TasksByStatus {
		if count != 0 {
			t.Errorf("status %q = %d, want 0", status, count)
		}
	}
	if dash.ProjectSummary == nil || dash.RecentActivity == nil {
		t.Error("empty collections must be empty slices, not nil")
	}
}

func TestDashboardBreakdownsSumToTotal(t *testing.T) {
	f := newFixture(t)
	past := time.Now().Add(-time.Hour)

	f.addTask(t, &domain.Task{Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow})
	f.addTask(t, &domain.Task{Title: "b", Status: domain.StatusInProgress, Priority: domain.PriorityHigh, DueDate: &past})
	f.addTask(t, &domain.Task{Title: "c", Status: domain.StatusCompleted, Priority: domain.PriorityHigh})

	dash, err := f.uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.TotalTasks != 3 {
		t.Errorf("totalTasks = %d", dash.TotalTasks)
	}
	if dash.CompletedTasks != 1 || dash.InProgressTasks != 1 || dash.PendingTasks != 1 {
		t.Errorf("status totals = %d/%d/%d", dash.CompletedTasks, dash.InProgressTasks, dash.PendingTasks)
	}
	if dash.OverdueTasks != 1 {
		t.Errorf("overdueTasks = %d, want 1", dash.OverdueTasks)
	}
	if dash.HighPriorityTasks != 2 {
		t.Errorf("highPriorityTasks = %d, want 2", dash.HighPriorityTasks)
	}

	statusSum := 0
	for _, count := range dash.TasksByStatus {
		statusSum += count
	}
	prioritySum := 0
	for _, count := range dash.TasksByPriority {
		prioritySum += count
	}
	if statusSum != dash.TotalTasks || prioritySum != dash.TotalTasks {
		t.Errorf("breakdowns sum to %d/%d, want %d", statusSum, prioritySum, dash.TotalTasks)
	}
}

func TestDashboardCapsProjectRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		status := domain.ProjectActive
		if i < 2 {
			status = domain.ProjectArchived
		}
		if _, err := f.projects.Create(ctx, &domain.Project{Name: "p", Status: status}); err != nil {
			t.Fatalf("create project: %v", err)
		}
	}

	dash, err := f.uc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(dash.ProjectSummary) != 10 {
		t.Errorf("project rows = %d, want 10", len(dash.ProjectSummary))
	}
	// The cap trims summary rows only, never the project counts.
	if dash.TotalProjects != 12 {
		t.Errorf("totalProjects = %d, want 12", dash.TotalProjects)
	}
	if dash.ActiveProjects != 10 {
		t.Errorf("activeProjects = %d, want 10", dash.ActiveProjects)
	}
}

func TestProductivityAveragesOnlyTimedCompletions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	completedAt := created.Add(10 * time.Hour)
	hours := 4.0

	// Completed with timestamp: counts toward the average.
	f.addTask(t, &domain.Task{
		Title: "timed", Status: domain.StatusCompleted, Priority: domain.PriorityHigh,
		AssignedToID: alice.ID, CreatedAt: created, CompletedAt: &completedAt, ActualHours: &hours,
	})
	// Completed without timestamp: counted as done but excluded from the average.
	f.addTask(t, &domain.Task{
		Title: "untimed", Status: domain.StatusCompleted, Priority: domain.PriorityLow,
		AssignedToID: alice.ID, CreatedAt: created,
	})
	// Open task: assigned only.
	f.addTask(t, &domain.Task{
		Title: "open", Status: domain.StatusInProgress, Priority: domain.PriorityLow,
		AssignedToID: alice.ID, CreatedAt: created,
	})

	rows, err := f.uc.Productivity(ctx)
	if err != nil {
		t.Fatalf("Productivity: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.TasksAssigned != 3 || row.TasksCompleted != 2 {
		t.Errorf("assigned/completed = %d/%d, want 3/2", row.TasksAssigned, row.TasksCompleted)
	}
	if row.AverageCompletionTime != 10 {
		t.Errorf("averageCompletionTime = %v, want 10", row.AverageCompletionTime)
	}
	if row.TotalHoursLogged != 4 {
		t.Errorf("totalHoursLogged = %v, want 4", row.TotalHoursLogged)
	}
}

func TestProductivitySortsByCompletedDescending(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	carol := f.addUser(t, "carol")

	for i := 0; i < 2; i++ {
		f.addTask(t, &domain.Task{Title: "b", Status: domain.StatusCompleted, Priority: domain.PriorityLow, AssignedToID: bob.ID})
	}
	f.addTask(t, &domain.Task{Title: "a", Status: domain.StatusCompleted, Priority: domain.PriorityLow, AssignedToID: alice.ID})

	rows, err := f.uc.Productivity(context.Background())
	if err != nil {
		t.Fatalf("Productivity: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].User.Username != "bob" || rows[1].User.Username != "alice" {
		t.Errorf("order = %q, %q; want bob first", rows[0].User.Username, rows[1].User.Username)
	}
	// Zero completions sorts last; user listing order breaks remaining ties.
	if rows[2].User.ID != carol.ID {
		t.Errorf("last = %q, want carol", rows[2].User.Username)
	}
}

func TestRecentActivityResolvesUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.activity.Append(ctx, &domain.ActivityRecord{
		TaskID: "gone", UserID: "ghost", Action: domain.ActionDeleted, Description: "cleanup",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	views, err := f.uc.RecentActivity(ctx, 10)
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if views[0].TaskTitle != "Unknown" || views[0].User.Username != "Unknown" {
		t.Errorf("unresolved refs = %q/%q, want Unknown placeholders", views[0].TaskTitle, views[0].User.Username)
	}
}
