// Package structs defines the task and user domain models, request and
// response bodies, and the caller Scope.
package structs

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task priorities
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Statuses lists the task statuses in display order.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// Priorities lists the task priorities in display order.
var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// IsValidStatus reports whether s is a task status.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// IsValidPriority reports whether p is a task priority.
func IsValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ChecklistItem is one todo entry of a task.
type ChecklistItem struct {
	Text      string `bson:"text" json:"text" binding:"required"`
	Completed bool   `bson:"completed" json:"completed"`
}

// Task is a unit of work assigned to one or more users.
type Task struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description" json:"description"`
	Priority      string               `bson:"priority" json:"priority"`
	Status        string               `bson:"status" json:"status"`
	DueDate       time.Time            `bson:"dueDate" json:"dueDate"`
	AssignedTo    []primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	CreatedBy     primitive.ObjectID   `bson:"createdBy,omitempty" json:"createdBy"`
	Attachments   []string             `bson:"attachments" json:"attachments"`
	TodoChecklist []ChecklistItem      `bson:"todoChecklist" json:"todoChecklist"`
	Progress      int                  `bson:"progress" json:"progress"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.AssignedTo = append([]primitive.ObjectID{}, t.AssignedTo...)
	c.Attachments = append([]string{}, t.Attachments...)
	c.TodoChecklist = append([]ChecklistItem{}, t.TodoChecklist...)
	return &c
}

// CompletedCount returns the number of completed checklist items.
func (t *Task) CompletedCount() int {
	n := 0
	for _, item := range t.TodoChecklist {
		if item.Completed {
			n++
		}
	}
	return n
}

// IsAssignee reports whether id is in the assignment list of t.
func (t *Task) IsAssignee(id primitive.ObjectID) bool {
	for _, a := range t.AssignedTo {
		if a == id {
			return true
		}
	}
	return false
}

// References reports whether id is an assignee or the creator of t.
func (t *Task) References(id primitive.ObjectID) bool {
	return t.CreatedBy == id || t.IsAssignee(id)
}

// TaskView is a task with populated assignees and checklist counts.
type TaskView struct {
	Task
	AssignedTo     []*UserSummary `json:"assignedTo"`
	CompletedCount int            `json:"completedCount"`
	TotalCount     int            `json:"totalCount"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Priority      string          `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Status        string          `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed"`
	DueDate       string          `json:"dueDate" binding:"required"`
	AssignedTo    json.RawMessage `json:"assignedTo"`
	Attachments   []string        `json:"attachments"`
	TodoChecklist []ChecklistItem `json:"todoChecklist" binding:"omitempty,dive"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. Empty values keep the stored value.
type UpdateTaskRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      string          `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	DueDate       string          `json:"dueDate"`
	AssignedTo    json.RawMessage `json:"assignedTo"`
	Attachments   []string        `json:"attachments"`
	TodoChecklist []ChecklistItem `json:"todoChecklist" binding:"omitempty,dive"`
}

// UpdateStatusRequest is the body of PUT /tasks/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateChecklistRequest is the body of PUT /tasks/:id/todo.
type UpdateChecklistRequest struct {
	TodoChecklist []ChecklistItem `json:"todoChecklist" binding:"required,dive"`
}

// StatusSummary counts tasks per status within the caller's scope.
type StatusSummary struct {
	All             int64 `json:"all"`
	PendingCount    int64 `json:"pendingCount"`
	InProgressCount int64 `json:"inProgressCount"`
	CompletedCount  int64 `json:"completedCount"`
}

// TaskList is the response of GET /tasks.
type TaskList struct {
	Tasks         []*TaskView   `json:"tasks"`
	StatusSummary StatusSummary `json:"statusSummary"`
}

// ChecklistResult is the response of PUT /tasks/:id/todo.
type ChecklistResult struct {
	Message        string    `json:"message"`
	Task           *TaskView `json:"task"`
	CompletedCount int       `json:"completedCount"`
	TotalCount     int       `json:"totalCount"`
}
