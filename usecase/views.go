// Package usecase holds the business services plus the response views they
// share. Views resolve cross-entity references at read time; a reference that
// fails to resolve never fails the operation, it degrades to a placeholder.
package usecase

import (
	"time"

	"github.com/taskhive/backend/domain"
)

// UnknownName substitutes for any identity or title that no longer resolves.
const UnknownName = "Unknown"

// UserRef is the basic identity shape embedded in responses.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// UserRefOf builds a UserRef, degrading to the Unknown placeholder when the
// user failed to resolve.
func UserRefOf(user *domain.User) UserRef {
	if user == nil {
		return UserRef{Username: UnknownName, FullName: UnknownName}
	}
	return UserRef{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
	}
}

// ProjectRef is the basic project shape embedded in responses.
type ProjectRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ProjectRefOf builds a ProjectRef, or nil when the project failed to resolve.
func ProjectRefOf(project *domain.Project) *ProjectRef {
	if project == nil {
		return nil
	}
	return &ProjectRef{
		ID:    project.ID,
		Name:  project.Name,
		Color: project.Color,
	}
}

// ActivityView is one resolved audit entry.
type ActivityView struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	TaskTitle   string    `json:"taskTitle"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	User        UserRef   `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}
