package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/internal/service"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/net/resp"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	svc    *service.TaskService
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc *service.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.svc.ListTasks(c.Request.Context(), scope(c), c.Query("status"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, list)
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, task)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req structs.CreateTaskRequest
	if !bind(c, h.logger, &req) {
		return
	}

	res, err := h.svc.CreateTask(c.Request.Context(), scope(c), &req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, res)
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	var req structs.UpdateTaskRequest
	if !bind(c, h.logger, &req) {
		return
	}

	res, err := h.svc.UpdateTask(c.Request.Context(), scope(c), c.Param("id"), &req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	res, err := h.svc.DeleteTask(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// SetStatus handles PUT /tasks/:id/status.
func (h *TaskHandler) SetStatus(c *gin.Context) {
	var req structs.UpdateStatusRequest
	if !bind(c, h.logger, &req) {
		return
	}

	res, err := h.svc.SetStatus(c.Request.Context(), scope(c), c.Param("id"), req.Status)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// SetChecklist handles PUT /tasks/:id/todo.
func (h *TaskHandler) SetChecklist(c *gin.Context) {
	var req structs.UpdateChecklistRequest
	if !bind(c, h.logger, &req) {
		return
	}

	res, err := h.svc.SetChecklist(c.Request.Context(), scope(c), c.Param("id"), req.TodoChecklist)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// AdminDashboard handles GET /tasks/dashboard-data.
func (h *TaskHandler) AdminDashboard(c *gin.Context) {
	d, err := h.svc.AdminDashboard(c.Request.Context(), scope(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, d)
}

// UserDashboard handles GET /tasks/user-dashboard-data.
func (h *TaskHandler) UserDashboard(c *gin.Context) {
	d, err := h.svc.UserDashboard(c.Request.Context(), scope(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, d)
}
