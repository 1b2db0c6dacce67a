// Package handler provides the HTTP handlers and route table of the task manager API.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/internal/middleware"
	"github.com/ncobase/taskmanager/internal/service"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/net/resp"
	"github.com/ncobase/taskmanager/validation/validator"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Task   *TaskHandler
	User   *UserHandler
	Auth   *AuthHandler
	Report *ReportHandler
	svc    *service.Service
	logger *logger.Logger
}

// NewHandler creates a new handler instance with all sub-handlers initialized.
func NewHandler(svc *service.Service, logger *logger.Logger) *Handler {
	return &Handler{
		Task:   NewTaskHandler(svc.Task, logger),
		User:   NewUserHandler(svc.User, logger),
		Auth:   NewAuthHandler(svc.Auth, svc.Upload, logger),
		Report: NewReportHandler(svc.Report, logger),
		svc:    svc,
		logger: logger,
	}
}

// RegisterRoutes registers all HTTP routes under /api.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	protect := middleware.Protect(h.svc.Auth, h.logger)
	adminOnly := middleware.AdminOnly()

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotAllowed("Method not allowed"))
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.GET("/profile", protect, h.Auth.Profile)
			auth.PUT("/profile", protect, h.Auth.UpdateProfile)
			auth.POST("/upload-image", h.Auth.UploadImage)
		}

		tasks := api.Group("/tasks", protect)
		{
			tasks.GET("/dashboard-data", adminOnly, h.Task.AdminDashboard)
			tasks.GET("/user-dashboard-data", h.Task.UserDashboard)
			tasks.GET("", h.Task.List)
			tasks.GET("/:id", h.Task.Get)
			tasks.POST("", adminOnly, h.Task.Create)
			tasks.PUT("/:id", adminOnly, h.Task.Update)
			tasks.DELETE("/:id", h.Task.Delete)
			tasks.PUT("/:id/status", h.Task.SetStatus)
			tasks.PUT("/:id/todo", h.Task.SetChecklist)
		}

		users := api.Group("/users", protect, adminOnly)
		{
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.PUT("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
		}

		reports := api.Group("/reports", protect, adminOnly)
		{
			reports.GET("/export/tasks", h.Report.ExportTasks)
			reports.GET("/export/users", h.Report.ExportUsers)
		}
	}
}

// scope returns the caller Scope; Protect guarantees it on every route that calls this.
func scope(c *gin.Context) structs.Scope {
	s, _ := middleware.GetScope(c)
	return s
}

// bind decodes the JSON body into req and writes a 400 on failure.
func bind(c *gin.Context, log *logger.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		msg, fields := validator.Message(err)
		log.Warn(c.Request.Context(), "invalid request", "error", err)
		if len(fields) > 0 {
			resp.Fail(c.Writer, resp.BadRequest(msg, fields))
		} else {
			resp.Fail(c.Writer, resp.BadRequest(msg))
		}
		return false
	}
	return true
}

// fail maps a service error to its HTTP response.
func fail(c *gin.Context, log *logger.Logger, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		switch {
		case errors.Is(se, service.ErrBadInput):
			resp.Fail(c.Writer, resp.BadRequest(se.Message))
		case errors.Is(se, service.ErrUnauthorized):
			resp.Fail(c.Writer, resp.UnAuthorized(se.Message))
		case errors.Is(se, service.ErrForbidden):
			resp.Fail(c.Writer, resp.Forbidden(se.Message))
		case errors.Is(se, service.ErrNotFound):
			resp.Fail(c.Writer, resp.NotFound(se.Message))
		case errors.Is(se, service.ErrConflict):
			resp.Fail(c.Writer, resp.Conflict(se.Message))
		default:
			resp.Fail(c.Writer, resp.InternalServer(se.Message))
		}
		return
	}

	log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	resp.Fail(c.Writer, resp.InternalServer("Server Error").WithError(err))
}
