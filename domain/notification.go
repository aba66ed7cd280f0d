package domain

import "time"

// NotificationType is the closed set of notification categories.
type NotificationType string

const (
	NotificationInfo          NotificationType = "Info"
	NotificationWarning       NotificationType = "Warning"
	NotificationSuccess       NotificationType = "Success"
	NotificationError         NotificationType = "Error"
	NotificationTaskAssigned  NotificationType = "TaskAssigned"
	NotificationTaskCompleted NotificationType = "TaskCompleted"
	NotificationTaskDueSoon   NotificationType = "TaskDueSoon"
	NotificationCommentAdded  NotificationType = "CommentAdded"
	NotificationProjectUpdate NotificationType = "ProjectUpdate"
)

// Notification is a per-user message describing an event relevant to them.
type Notification struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	Type             NotificationType `json:"type"`
	RelatedTaskID    string           `json:"relatedTaskId,omitempty"`
	RelatedProjectID string           `json:"relatedProjectId,omitempty"`
	IsRead           bool             `json:"isRead"`
	CreatedAt        time.Time        `json:"createdAt"`
}
