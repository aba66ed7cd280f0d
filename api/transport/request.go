package transport

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TaskCreateRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	ProjectID      string     `json:"projectId"`
	AssignedToID   string     `json:"assignedToId"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
	Tags           []string   `json:"tags"`
}

// TaskUpdateRequest is a partial update; absent fields stay nil and leave the
// task untouched.
type TaskUpdateRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	ProjectID      *string    `json:"projectId"`
	AssignedToID   *string    `json:"assignedToId"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
	ActualHours    *float64   `json:"actualHours"`
	Tags           []string   `json:"tags"`
}

type ProjectCreateRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	MemberIDs   []string   `json:"memberIds"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Color       string     `json:"color"`
}

// ProjectUpdateRequest is a partial update; absent fields stay nil and leave
// the project untouched.
type ProjectUpdateRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	MemberIDs   []string   `json:"memberIds"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Color       *string    `json:"color"`
}

type CommentCreateRequest struct {
	TaskID  string `json:"taskId"`
	Content string `json:"content"`
}

type CommentUpdateRequest struct {
	Content string `json:"content"`
}
