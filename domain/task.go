package domain

import "time"

// TaskStatus is the closed set of task states. The string values are the
// canonical wire encoding; unknown strings never round-trip into a Task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "InProgress"
	StatusReview     TaskStatus = "Review"
	StatusCompleted  TaskStatus = "Completed"
	StatusCancelled  TaskStatus = "Cancelled"
)

// TaskStatuses lists every status in canonical order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusReview, StatusCompleted, StatusCancelled}
}

// ParseTaskStatus maps a wire string to a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case StatusPending, StatusInProgress, StatusReview, StatusCompleted, StatusCancelled:
		return TaskStatus(s), true
	}
	return "", false
}

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

// TaskPriorities lists every priority in canonical order.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// ParseTaskPriority maps a wire string to a TaskPriority.
func ParseTaskPriority(s string) (TaskPriority, bool) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return TaskPriority(s), true
	}
	return "", false
}

// Task is a trackable unit of work.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	ProjectID      string       `json:"projectId,omitempty"`
	AssignedToID   string       `json:"assignedToId,omitempty"`
	CreatedByID    string       `json:"createdById"`
	DueDate        *time.Time   `json:"dueDate,omitempty"`
	EstimatedHours *float64     `json:"estimatedHours,omitempty"`
	ActualHours    *float64     `json:"actualHours,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// IsOverdue reports whether the task is past due and still open.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// TaskPatch is a partial update: nil fields leave the existing value
// untouched, non-nil fields overwrite it. Status and Priority carry raw wire
// strings so unparseable values can be ignored instead of rejected.
type TaskPatch struct {
	Title          *string
	Description    *string
	Status         *string
	Priority       *string
	ProjectID      *string
	AssignedToID   *string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	Tags           []string
}
