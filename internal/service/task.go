package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ncobase/taskmanager/cache"
	"github.com/ncobase/taskmanager/internal/data"
	"github.com/ncobase/taskmanager/internal/data/repository"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgTaskNotFound       = "Task not found"
	msgInvalidAssignees   = "assignedTo should be an array of User IDs"
	msgCannotView         = "You do not have permission to view this task"
	msgCannotUpdate       = "You do not have permission to update this task"
	msgCannotDelete       = "You do not have permission to delete this task"
	msgTaskCreated        = "Task created successfully"
	msgTaskUpdated        = "Task updated successfully"
	msgTaskDeleted        = "Task deleted successfully"
	msgTaskStatusUpdated  = "Task status updated successfully"
	msgChecklistUpdated   = "Task checklist updated successfully"
	upcomingWindow        = 7 * 24 * time.Hour
	recentTasksLimit      = 10
	adminDashboardKey     = "admin"
	memberDashboardPrefix = "user:"
)

// Result is the body returned by mutations.
type Result struct {
	Message string            `json:"message"`
	Task    *structs.TaskView `json:"task,omitempty"`
}

// TaskService handles task-related business logic.
type TaskService struct {
	data       *data.Data
	dashboards cache.ICache[structs.Dashboard]
	now        func() time.Time
	logger     *logger.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(d *data.Data, dashboards cache.ICache[structs.Dashboard], now func() time.Time, logger *logger.Logger) *TaskService {
	if dashboards == nil {
		dashboards = cache.NewCache[structs.Dashboard](nil, "", 0)
	}
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		data:       d,
		dashboards: dashboards,
		now:        now,
		logger:     logger,
	}
}

func scopeFilter(scope structs.Scope) repository.TaskFilter {
	if scope.IsAdmin() {
		return repository.TaskFilter{}
	}
	uid := scope.UserID
	return repository.TaskFilter{Assignee: &uid}
}

// ListTasks returns the tasks visible to the caller, optionally limited to one status,
// with a per-status summary of the caller's scope.
func (s *TaskService) ListTasks(ctx context.Context, scope structs.Scope, status string) (*structs.TaskList, error) {
	if status != "" && !structs.IsValidStatus(status) {
		return nil, BadInput("Invalid status value")
	}

	base := scopeFilter(scope)
	tasks, err := s.data.TaskRepo.Find(ctx, base.WithStatus(status), repository.ListOptions{Sort: repository.SortCreatedDesc})
	if err != nil {
		return nil, err
	}
	views, err := s.populate(ctx, tasks)
	if err != nil {
		return nil, err
	}

	summary := structs.StatusSummary{}
	if summary.All, err = s.data.TaskRepo.Count(ctx, base); err != nil {
		return nil, err
	}
	buckets := []struct {
		status string
		dst    *int64
	}{
		{structs.StatusPending, &summary.PendingCount},
		{structs.StatusInProgress, &summary.InProgressCount},
		{structs.StatusCompleted, &summary.CompletedCount},
	}
	for _, b := range buckets {
		if *b.dst, err = s.data.TaskRepo.Count(ctx, base.WithStatus(b.status)); err != nil {
			return nil, err
		}
	}

	return &structs.TaskList{Tasks: views, StatusSummary: summary}, nil
}

// GetTask returns one populated task visible to the caller.
func (s *TaskService) GetTask(ctx context.Context, scope structs.Scope, id string) (*structs.TaskView, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanView(task) {
		return nil, Forbidden(msgCannotView)
	}
	return s.view(ctx, task)
}

// CreateTask stores a new task created by the caller.
func (s *TaskService) CreateTask(ctx context.Context, scope structs.Scope, req *structs.CreateTaskRequest) (*Result, error) {
	if !scope.IsAdmin() {
		return nil, Forbidden("Access denied. Admin only.")
	}

	assignees, provided, err := parseAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}
	if !provided {
		return nil, BadInput(msgInvalidAssignees)
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = structs.PriorityMedium
	}

	task := &structs.Task{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      priority,
		Status:        structs.StatusPending,
		DueDate:       due,
		AssignedTo:    assignees,
		CreatedBy:     scope.UserID,
		Attachments:   req.Attachments,
		TodoChecklist: req.TodoChecklist,
	}
	if req.Status != "" {
		if err := ApplyStatus(task, req.Status); err != nil {
			return nil, err
		}
	}
	Reconcile(task)

	created, err := s.data.TaskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	s.evictDashboards(ctx, created.AssignedTo)

	s.logger.Info(ctx, "Task created", "task_id", created.ID.Hex(), "created_by", scope.UserID.Hex())
	v, err := s.view(ctx, created)
	if err != nil {
		return nil, err
	}
	return &Result{Message: msgTaskCreated, Task: v}, nil
}

// UpdateTask applies a partial update. Empty values keep the stored value.
func (s *TaskService) UpdateTask(ctx context.Context, scope structs.Scope, id string, req *structs.UpdateTaskRequest) (*Result, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.IsAdmin() {
		return nil, Forbidden(msgCannotUpdate)
	}

	previous := append([]primitive.ObjectID{}, task.AssignedTo...)

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}
	if req.Attachments != nil {
		task.Attachments = req.Attachments
	}
	if req.TodoChecklist != nil {
		task.TodoChecklist = req.TodoChecklist
	}
	assignees, provided, err := parseAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}
	if provided {
		task.AssignedTo = assignees
	}
	Reconcile(task)

	updated, err := s.data.TaskRepo.Update(ctx, task)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	s.evictDashboards(ctx, append(previous, updated.AssignedTo...))

	s.logger.Info(ctx, "Task updated", "task_id", updated.ID.Hex(), "user_id", scope.UserID.Hex())
	v, err := s.view(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &Result{Message: msgTaskUpdated, Task: v}, nil
}

// DeleteTask removes a task. Only admins and the creator may delete.
func (s *TaskService) DeleteTask(ctx context.Context, scope structs.Scope, id string) (*Result, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanDelete(task) {
		return nil, Forbidden(msgCannotDelete)
	}

	if err := s.data.TaskRepo.Delete(ctx, task.ID); err != nil {
		return nil, s.mapNotFound(err)
	}
	s.evictDashboards(ctx, task.AssignedTo)

	s.logger.Info(ctx, "Task deleted", "task_id", task.ID.Hex(), "user_id", scope.UserID.Hex())
	return &Result{Message: msgTaskDeleted}, nil
}

// SetStatus changes the status of a task the caller administers or is assigned to.
func (s *TaskService) SetStatus(ctx context.Context, scope structs.Scope, id, status string) (*Result, error) {
	if !structs.IsValidStatus(status) {
		return nil, BadInput("Invalid status value")
	}

	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanView(task) {
		return nil, Forbidden(msgCannotUpdate)
	}
	if err := ApplyStatus(task, status); err != nil {
		return nil, err
	}

	updated, err := s.data.TaskRepo.Update(ctx, task)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	s.evictDashboards(ctx, updated.AssignedTo)

	s.logger.Info(ctx, "Task status updated", "task_id", updated.ID.Hex(), "status", updated.Status)
	v, err := s.view(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &Result{Message: msgTaskStatusUpdated, Task: v}, nil
}

// SetChecklist replaces the checklist and derives progress and status from it.
func (s *TaskService) SetChecklist(ctx context.Context, scope structs.Scope, id string, checklist []structs.ChecklistItem) (*structs.ChecklistResult, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanView(task) {
		return nil, Forbidden(msgCannotUpdate)
	}

	task.TodoChecklist = checklist
	if task.TodoChecklist == nil {
		task.TodoChecklist = []structs.ChecklistItem{}
	}
	Reconcile(task)

	updated, err := s.data.TaskRepo.Update(ctx, task)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	s.evictDashboards(ctx, updated.AssignedTo)

	s.logger.Info(ctx, "Task checklist updated", "task_id", updated.ID.Hex(), "progress", updated.Progress)
	v, err := s.view(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &structs.ChecklistResult{
		Message:        msgChecklistUpdated,
		Task:           v,
		CompletedCount: v.CompletedCount,
		TotalCount:     v.TotalCount,
	}, nil
}

func (s *TaskService) load(ctx context.Context, id string) (*structs.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NotFound(msgTaskNotFound)
	}
	task, err := s.data.TaskRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return task, nil
}

func (s *TaskService) mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFound(msgTaskNotFound)
	}
	return err
}

func (s *TaskService) view(ctx context.Context, task *structs.Task) (*structs.TaskView, error) {
	views, err := s.populate(ctx, []*structs.Task{task})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// populate resolves assignees with one lookup. Dangling references are dropped.
func (s *TaskService) populate(ctx context.Context, tasks []*structs.Task) ([]*structs.TaskView, error) {
	return populateTasks(ctx, s.data.UserRepo, tasks)
}

func populateTasks(ctx context.Context, users repository.UserRepository, tasks []*structs.Task) ([]*structs.TaskView, error) {
	seen := map[primitive.ObjectID]bool{}
	var ids []primitive.ObjectID
	for _, t := range tasks {
		for _, a := range t.AssignedTo {
			if !seen[a] {
				seen[a] = true
				ids = append(ids, a)
			}
		}
	}

	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*structs.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	views := make([]*structs.TaskView, 0, len(tasks))
	for _, t := range tasks {
		v := &structs.TaskView{
			Task:           *t,
			AssignedTo:     []*structs.UserSummary{},
			CompletedCount: t.CompletedCount(),
			TotalCount:     len(t.TodoChecklist),
		}
		for _, a := range t.AssignedTo {
			if u, ok := byID[a]; ok {
				v.AssignedTo = append(v.AssignedTo, u.Summary())
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// parseAssignees decodes an assignedTo value. Absent and null are not provided;
// anything else must be an array of ObjectID strings.
func parseAssignees(raw json.RawMessage) ([]primitive.ObjectID, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []primitive.ObjectID{}, false, nil
	}

	var hexes []string
	if err := json.Unmarshal(trimmed, &hexes); err != nil {
		return nil, true, BadInput(msgInvalidAssignees)
	}

	ids := make([]primitive.ObjectID, 0, len(hexes))
	seen := map[primitive.ObjectID]bool{}
	for _, h := range hexes {
		oid, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, true, BadInput(msgInvalidAssignees)
		}
		if !seen[oid] {
			seen[oid] = true
			ids = append(ids, oid)
		}
	}
	return ids, true, nil
}

var dueDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func parseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, BadInput("dueDate must be a date (YYYY-MM-DD or RFC 3339)")
}
