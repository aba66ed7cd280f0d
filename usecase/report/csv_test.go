package report

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/taskhive/backend/domain"
)

func TestProductivityCSVHasHeaderAndRows(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	f.addTask(t, &domain.Task{Title: "t", Status: domain.StatusCompleted, Priority: domain.PriorityLow, AssignedToID: alice.ID})

	data, err := f.uc.ProductivityCSV(context.Background())
	if err != nil {
		t.Fatalf("ProductivityCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header plus one row", len(records))
	}
	if records[0][0] != "Username" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "alice" || records[1][3] != "1" {
		t.Errorf("row = %v", records[1])
	}
}

func TestActivityCSVDefaultsLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 120; i++ {
		if err := f.activity.Append(ctx, &domain.ActivityRecord{
			TaskID: "t", UserID: "u", Action: domain.ActionUpdated, Description: "change",
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	data, err := f.uc.ActivityCSV(ctx, 0)
	if err != nil {
		t.Fatalf("ActivityCSV: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header plus the default cap of 100 rows.
	if len(records) != 101 {
		t.Errorf("records = %d, want 101", len(records))
	}
}

func TestDashboardCSVContainsEverySection(t *testing.T) {
	f := newFixture(t)
	f.addTask(t, &domain.Task{Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow})

	data, err := f.uc.DashboardCSV(context.Background())
	if err != nil {
		t.Fatalf("DashboardCSV: %v", err)
	}
	text := string(data)

	for _, header := range []string{"Metric,Value", "Status,Count", "Priority,Count", "Project,TotalTasks"} {
		if !strings.Contains(text, header) {
			t.Errorf("missing section header %q", header)
		}
	}
	for _, metric := range []string{"HighPriorityTasks", "TotalProjects", "ActiveProjects"} {
		if !strings.Contains(text, metric) {
			t.Errorf("missing summary metric %q", metric)
		}
	}
	for _, status := range domain.TaskStatuses() {
		if !strings.Contains(text, string(status)) {
			t.Errorf("status section missing %q", status)
		}
	}
}
