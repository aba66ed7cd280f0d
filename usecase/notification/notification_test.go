package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository/memory"
)

func seed(t *testing.T, store *memory.NotificationStore, userID string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		created, err := store.Create(context.Background(), &domain.Notification{
			UserID: userID,
			Title:  "event",
			Type:   domain.NotificationInfo,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, created.ID)
	}
	return ids
}

func TestMarkAsReadRequiresOwnership(t *testing.T) {
	store := memory.NewNotificationStore()
	uc := New(store, nil)
	ctx := context.Background()

	ids := seed(t, store, "alice", 1)

	if err := uc.MarkAsRead(ctx, ids[0], "bob"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("foreign mark-read err = %v, want not found", err)
	}
	if err := uc.MarkAsRead(ctx, ids[0], "alice"); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}

	counts, err := uc.GetCounts(ctx, "alice")
	if err != nil {
		t.Fatalf("GetCounts: %v", err)
	}
	if counts.UnreadCount != 0 {
		t.Errorf("unread = %d, want 0", counts.UnreadCount)
	}
}

func TestGetCountsReturnsUnreadAndTotal(t *testing.T) {
	store := memory.NewNotificationStore()
	uc := New(store, nil)
	ctx := context.Background()

	ids := seed(t, store, "alice", 3)
	if err := uc.MarkAsRead(ctx, ids[0], "alice"); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}

	counts, err := uc.GetCounts(ctx, "alice")
	if err != nil {
		t.Fatalf("GetCounts: %v", err)
	}
	if counts.UnreadCount != 2 {
		t.Errorf("unread = %d, want 2", counts.UnreadCount)
	}
	// The total keeps counting read notifications.
	if counts.TotalCount != 3 {
		t.Errorf("total = %d, want 3", counts.TotalCount)
	}
}

func TestMarkAllAsReadLeavesOtherUsersAlone(t *testing.T) {
	store := memory.NewNotificationStore()
	uc := New(store, nil)
	ctx := context.Background()

	seed(t, store, "alice", 3)
	seed(t, store, "bob", 2)

	if err := uc.MarkAllAsRead(ctx, "alice"); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}

	aliceCounts, _ := uc.GetCounts(ctx, "alice")
	bobCounts, _ := uc.GetCounts(ctx, "bob")
	if aliceCounts.UnreadCount != 0 {
		t.Errorf("alice unread = %d, want 0", aliceCounts.UnreadCount)
	}
	if bobCounts.UnreadCount != 2 {
		t.Errorf("bob unread = %d, want 2", bobCounts.UnreadCount)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	store := memory.NewNotificationStore()
	uc := New(store, nil)
	ctx := context.Background()

	ids := seed(t, store, "alice", 1)

	if err := uc.Delete(ctx, ids[0], "bob"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("foreign delete err = %v, want not found", err)
	}
	if err := uc.Delete(ctx, ids[0], "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	remaining, _ := uc.List(ctx, "alice")
	if len(remaining) != 0 {
		t.Errorf("notification still listed after delete")
	}
}

func TestListCapsAtFifty(t *testing.T) {
	store := memory.NewNotificationStore()
	uc := New(store, nil)
	ctx := context.Background()

	seed(t, store, "alice", 60)

	listed, err := uc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 50 {
		t.Errorf("listed %d notifications, want 50", len(listed))
	}
}
