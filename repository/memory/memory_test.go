package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

func seedTasks(t *testing.T, store *TaskStore, tasks ...*domain.Task) {
	t.Helper()
	for _, task := range tasks {
		if _, err := store.Create(context.Background(), task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}
}

func TestTaskStoreListPaginates(t *testing.T) {
	store := NewTaskStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		created := base.Add(time.Duration(i) * time.Hour)
		seedTasks(t, store, &domain.Task{
			Title:     fmt.Sprintf("task-%d", i),
			Status:    domain.StatusInProgress,
			Priority:  domain.PriorityMedium,
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	seedTasks(t, store, &domain.Task{
		Title:    "unrelated",
		Status:   domain.StatusPending,
		Priority: domain.PriorityLow,
	})

	filter := repository.TaskFilter{
		Status:         string(domain.StatusInProgress),
		PageNumber:     2,
		PageSize:       2,
		SortBy:         "CreatedAt",
		SortDescending: true,
	}
	tasks, total, err := store.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(tasks) != 2 {
		t.Fatalf("page length = %d, want 2", len(tasks))
	}
	// Newest first: page 2 holds task-2 and task-1.
	if tasks[0].Title != "task-2" || tasks[1].Title != "task-1" {
		t.Errorf("page order = %q, %q", tasks[0].Title, tasks[1].Title)
	}
}

func TestTaskStoreListIgnoresUnparseableStatus(t *testing.T) {
	store := NewTaskStore()
	seedTasks(t, store,
		&domain.Task{Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow},
		&domain.Task{Title: "b", Status: domain.StatusCompleted, Priority: domain.PriorityHigh},
	)

	filter := repository.TaskFilter{Status: "NotAStatus", PageNumber: 1, PageSize: 10}
	_, total, err := store.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("unparseable status should match everything, total = %d", total)
	}
}

func TestTaskStoreListSearchesTitleAndDescription(t *testing.T) {
	store := NewTaskStore()
	seedTasks(t, store,
		&domain.Task{Title: "Fix login bug", Status: domain.StatusPending, Priority: domain.PriorityHigh},
		&domain.Task{Title: "Write docs", Description: "covers the login flow", Status: domain.StatusPending, Priority: domain.PriorityLow},
		&domain.Task{Title: "Deploy", Status: domain.StatusPending, Priority: domain.PriorityLow},
	)

	_, total, err := store.List(context.Background(), repository.TaskFilter{
		SearchTerm: "LOGIN", PageNumber: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("search total = %d, want 2", total)
	}
}

func TestTaskStoreGetOverdue(t *testing.T) {
	store := NewTaskStore()
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	seedTasks(t, store,
		&domain.Task{Title: "late", Status: domain.StatusInProgress, Priority: domain.PriorityHigh, DueDate: &past},
		&domain.Task{Title: "done late", Status: domain.StatusCompleted, Priority: domain.PriorityHigh, DueDate: &past},
		&domain.Task{Title: "cancelled late", Status: domain.StatusCancelled, Priority: domain.PriorityLow, DueDate: &past},
		&domain.Task{Title: "on time", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: &future},
		&domain.Task{Title: "no due", Status: domain.StatusPending, Priority: domain.PriorityLow},
	)

	overdue, err := store.GetOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("GetOverdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].Title != "late" {
		t.Errorf("overdue = %+v, want only the open past-due task", overdue)
	}
}

func TestTaskStoreCountByStatusCoversEveryStatus(t *testing.T) {
	store := NewTaskStore()
	seedTasks(t, store,
		&domain.Task{Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow},
		&domain.Task{Title: "b", Status: domain.StatusPending, Priority: domain.PriorityLow},
		&domain.Task{Title: "c", Status: domain.StatusCompleted, Priority: domain.PriorityHigh},
	)

	counts, err := store.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if len(counts) != len(domain.TaskStatuses()) {
		t.Errorf("breakdown has %d entries, want %d", len(counts), len(domain.TaskStatuses()))
	}

	sum := 0
	for _, status := range domain.TaskStatuses() {
		count, ok := counts[status]
		if !ok {
			t.Errorf("missing entry for status %q", status)
		}
		sum += count
	}
	if sum != 3 {
		t.Errorf("breakdown sums to %d, want 3", sum)
	}
	if counts[domain.StatusReview] != 0 {
		t.Errorf("unused status should be zero, got %d", counts[domain.StatusReview])
	}
}

func TestTaskStoreDueDateBounds(t *testing.T) {
	store := NewTaskStore()
	day := func(d int) *time.Time {
		ts := time.Date(2026, 4, d, 12, 0, 0, 0, time.UTC)
		return &ts
	}
	seedTasks(t, store,
		&domain.Task{Title: "early", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: day(1)},
		&domain.Task{Title: "middle", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: day(10)},
		&domain.Task{Title: "late", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: day(20)},
		&domain.Task{Title: "no due", Status: domain.StatusPending, Priority: domain.PriorityLow},
	)

	tasks, total, err := store.List(context.Background(), repository.TaskFilter{
		DueDateFrom: day(5),
		DueDateTo:   day(15),
		PageNumber:  1,
		PageSize:    10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || tasks[0].Title != "middle" {
		t.Errorf("due date window matched %d tasks, want only the middle one", total)
	}
}

func TestNotificationStoreMarkAllAsReadScopedToUser(t *testing.T) {
	store := NewNotificationStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, &domain.Notification{UserID: "alice", Title: "n"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := store.Create(ctx, &domain.Notification{UserID: "bob", Title: "n"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.MarkAllAsRead(ctx, "alice"); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}

	aliceUnread, _ := store.CountUnreadByUserID(ctx, "alice")
	bobUnread, _ := store.CountUnreadByUserID(ctx, "bob")
	if aliceUnread != 0 {
		t.Errorf("alice unread = %d, want 0", aliceUnread)
	}
	if bobUnread != 1 {
		t.Errorf("bob unread = %d, want 1 (must not be touched)", bobUnread)
	}
}
