package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskhive/backend/api/handler"
)

type Handlers struct {
	Auth         *apiHandler.AuthHandler
	User         *apiHandler.UserHandler
	Task         *apiHandler.TaskHandler
	Project      *apiHandler.ProjectHandler
	Comment      *apiHandler.CommentHandler
	Notification *apiHandler.NotificationHandler
	Report       *apiHandler.ReportHandler
	Health       *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.GET("/api/v1/auth/me", authMiddleware(handlers.Auth.Me))

	// Users
	r.GET("/api/v1/users", authMiddleware(handlers.User.GetUsers))
	r.GET("/api/v1/users/{id}", authMiddleware(handlers.User.GetUser))

	// Tasks. Static segments must be registered alongside {id}; fasthttp/router
	// resolves the collision in favor of the static route.
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.GET("/api/v1/tasks/mine", authMiddleware(handlers.Task.GetMyTasks))
	r.GET("/api/v1/tasks/search", authMiddleware(handlers.Task.SearchTasks))
	r.GET("/api/v1/tasks/overdue", authMiddleware(handlers.Task.GetOverdueTasks))
	r.GET("/api/v1/tasks/project/{projectId}", authMiddleware(handlers.Task.GetTasksByProject))
	r.GET("/api/v1/tasks/user/{userId}", authMiddleware(handlers.Task.GetTasksByAssignee))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.GET("/api/v1/tasks/{id}/history", authMiddleware(handlers.Task.GetTaskHistory))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	// Projects
	r.GET("/api/v1/projects", authMiddleware(handlers.Project.GetProjects))
	r.GET("/api/v1/projects/mine", authMiddleware(handlers.Project.GetMyProjects))
	r.GET("/api/v1/projects/{id}", authMiddleware(handlers.Project.GetProject))
	r.POST("/api/v1/projects", authMiddleware(handlers.Project.CreateProject))
	r.PUT("/api/v1/projects/{id}", authMiddleware(handlers.Project.UpdateProject))
	r.DELETE("/api/v1/projects/{id}", authMiddleware(handlers.Project.DeleteProject))

	// Comments
	r.GET("/api/v1/comments/task/{taskId}", authMiddleware(handlers.Comment.GetCommentsByTask))
	r.GET("/api/v1/comments/{id}", authMiddleware(handlers.Comment.GetComment))
	r.POST("/api/v1/comments", authMiddleware(handlers.Comment.CreateComment))
	r.PUT("/api/v1/comments/{id}", authMiddleware(handlers.Comment.UpdateComment))
	r.DELETE("/api/v1/comments/{id}", authMiddleware(handlers.Comment.DeleteComment))

	// Notifications
	r.GET("/api/v1/notifications", authMiddleware(handlers.Notification.GetNotifications))
	r.GET("/api/v1/notifications/unread-count", authMiddleware(handlers.Notification.GetUnreadCount))
	r.PUT("/api/v1/notifications/read-all", authMiddleware(handlers.Notification.MarkAllAsRead))
	r.PUT("/api/v1/notifications/{id}/read", authMiddleware(handlers.Notification.MarkAsRead))
	r.DELETE("/api/v1/notifications/{id}", authMiddleware(handlers.Notification.DeleteNotification))

	// Reports
	r.GET("/api/v1/reports/dashboard", authMiddleware(handlers.Report.GetDashboard))
	r.GET("/api/v1/reports/dashboard/export", authMiddleware(handlers.Report.ExportDashboardCSV))
	r.GET("/api/v1/reports/productivity", authMiddleware(handlers.Report.GetProductivity))
	r.GET("/api/v1/reports/productivity/export", authMiddleware(handlers.Report.ExportProductivityCSV))
	r.GET("/api/v1/reports/activity", authMiddleware(handlers.Report.GetRecentActivity))
	r.GET("/api/v1/reports/activity/export", authMiddleware(handlers.Report.ExportActivityCSV))

	return r
}
