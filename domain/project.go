package domain

import (
	"slices"
	"time"
)

// ProjectStatus is the closed set of project states.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectOnHold    ProjectStatus = "OnHold"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectArchived  ProjectStatus = "Archived"
)

// ParseProjectStatus maps a wire string to a ProjectStatus.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch ProjectStatus(s) {
	case ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
		return ProjectStatus(s), true
	}
	return "", false
}

// DefaultProjectColor is applied when a project is created without one.
const DefaultProjectColor = "#3B82F6"

// Project is a named grouping of tasks with an owner and members.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	OwnerID     string        `json:"ownerId"`
	MemberIDs   []string      `json:"memberIds"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Color       string        `json:"color"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// HasMember reports whether the user belongs to the project. The owner is
// always a member, even when absent from the member list.
func (p *Project) HasMember(userID string) bool {
	if p == nil {
		return false
	}
	return p.OwnerID == userID || slices.Contains(p.MemberIDs, userID)
}

// ProjectPatch is a partial update; nil fields leave existing values alone.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
	Color       *string
	MemberIDs   []string
}
