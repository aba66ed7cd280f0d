package domain

import (
	"testing"
	"time"
)

func TestParseTaskStatus(t *testing.T) {
	for _, status := range TaskStatuses() {
		parsed, ok := ParseTaskStatus(string(status))
		if !ok || parsed != status {
			t.Errorf("ParseTaskStatus(%q) = %q, %v", status, parsed, ok)
		}
	}

	for _, raw := range []string{"", "pending", "PENDING", "Done", "in_progress"} {
		if _, ok := ParseTaskStatus(raw); ok {
			t.Errorf("ParseTaskStatus(%q) accepted an invalid value", raw)
		}
	}
}

func TestParseTaskPriority(t *testing.T) {
	for _, priority := range TaskPriorities() {
		parsed, ok := ParseTaskPriority(string(priority))
		if !ok || parsed != priority {
			t.Errorf("ParseTaskPriority(%q) = %q, %v", priority, parsed, ok)
		}
	}

	if _, ok := ParseTaskPriority("urgent"); ok {
		t.Error("ParseTaskPriority accepted an unknown value")
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"past due open task", Task{Status: StatusInProgress, DueDate: &past}, true},
		{"future due date", Task{Status: StatusPending, DueDate: &future}, false},
		{"no due date", Task{Status: StatusPending}, false},
		{"completed past due", Task{Status: StatusCompleted, DueDate: &past}, false},
		{"cancelled past due", Task{Status: StatusCancelled, DueDate: &past}, false},
	}
	for _, tc := range cases {
		if got := tc.task.IsOverdue(now); got != tc.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestProjectHasMember(t *testing.T) {
	project := Project{OwnerID: "owner", MemberIDs: []string{"alice", "bob"}}

	if !project.HasMember("owner") {
		t.Error("owner should count as a member")
	}
	if !project.HasMember("alice") {
		t.Error("listed member not recognized")
	}
	if project.HasMember("stranger") {
		t.Error("non-member recognized as member")
	}
}
