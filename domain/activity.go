package domain

import "time"

// ActivityAction is the closed set of audited task mutations.
type ActivityAction string

const (
	ActionCreated       ActivityAction = "Created"
	ActionUpdated       ActivityAction = "Updated"
	ActionStatusChanged ActivityAction = "StatusChanged"
	ActionAssigned      ActivityAction = "Assigned"
	ActionCommented     ActivityAction = "Commented"
	ActionDeleted       ActivityAction = "Deleted"
	ActionRestored      ActivityAction = "Restored"
)

// ActivityRecord is an immutable audit entry describing one change to a task.
// Records are appended once and never mutated or deleted.
type ActivityRecord struct {
	ID          string         `json:"id"`
	TaskID      string         `json:"taskId"`
	UserID      string         `json:"userId"`
	Action      ActivityAction `json:"action"`
	Field       string         `json:"field,omitempty"`
	OldValue    string         `json:"oldValue,omitempty"`
	NewValue    string         `json:"newValue,omitempty"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
}
