package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/taskhive/backend/repository"
)

func TestBuildTaskFilterEmpty(t *testing.T) {
	where, args := buildTaskFilter(repository.TaskFilter{})
	if where != "" || len(args) != 0 {
		t.Errorf("empty filter produced %q with %d args", where, len(args))
	}
}

func TestBuildTaskFilterDropsUnparseableEnums(t *testing.T) {
	where, args := buildTaskFilter(repository.TaskFilter{
		Status:   "bogus",
		Priority: "also-bogus",
	})
	if where != "" || len(args) != 0 {
		t.Errorf("unparseable enums should add no predicates, got %q", where)
	}
}

func TestBuildTaskFilterCombinesPredicates(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args := buildTaskFilter(repository.TaskFilter{
		Status:       "InProgress",
		ProjectID:    "p1",
		SearchTerm:   "login",
		DueDateFrom:  &from,
		AssignedToID: "u1",
	})

	if !strings.HasPrefix(where, " WHERE ") {
		t.Fatalf("where = %q", where)
	}
	for _, fragment := range []string{
		"status = $1",
		"project_id = $",
		"assigned_to_id = $",
		"title ILIKE",
		"description ILIKE",
		"due_date >= $",
	} {
		if !strings.Contains(where, fragment) {
			t.Errorf("where clause missing %q: %q", fragment, where)
		}
	}
	if strings.Count(where, " AND ") != 4 {
		t.Errorf("predicate count wrong: %q", where)
	}
	if len(args) != 5 {
		t.Errorf("args = %d, want 5", len(args))
	}
	if args[len(args)-2] != "%login%" {
		t.Errorf("search arg = %v", args[len(args)-2])
	}
}

func TestSortClauseWhitelist(t *testing.T) {
	cases := []struct {
		sortBy string
		desc   bool
		want   string
	}{
		{"DueDate", false, " ORDER BY due_date ASC"},
		{"dueDate", true, " ORDER BY due_date DESC"},
		{"Title", false, " ORDER BY title ASC"},
		{"CreatedAt", true, " ORDER BY created_at DESC"},
		{"NotAColumn", true, " ORDER BY created_at DESC"},
		{"", false, " ORDER BY created_at ASC"},
		{"id; DROP TABLE tasks", false, " ORDER BY created_at ASC"},
	}
	for _, tc := range cases {
		if got := sortClause(tc.sortBy, tc.desc); got != tc.want {
			t.Errorf("sortClause(%q, %v) = %q, want %q", tc.sortBy, tc.desc, got, tc.want)
		}
	}
}
