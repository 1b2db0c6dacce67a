package repository

import (
	"sort"
	"time"

	"github.com/ncobase/taskmanager/internal/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskFilter selects tasks. Zero fields do not constrain.
type TaskFilter struct {
	Assignee  *primitive.ObjectID
	Involves  *primitive.ObjectID // assignee or creator
	Status    string
	StatusNot string
	Priority  string
	DueBefore *time.Time // exclusive
	DueFrom   *time.Time // inclusive
	DueUntil  *time.Time // inclusive
}

// WithStatus returns a copy of f constrained to status.
func (f TaskFilter) WithStatus(status string) TaskFilter {
	f.Status = status
	return f
}

// WithPriority returns a copy of f constrained to priority.
func (f TaskFilter) WithPriority(priority string) TaskFilter {
	f.Priority = priority
	return f
}

// BSON renders the filter as a MongoDB query document.
func (f TaskFilter) BSON() bson.M {
	q := bson.M{}
	if f.Assignee != nil {
		q["assignedTo"] = *f.Assignee
	}
	if f.Involves != nil {
		q["$or"] = bson.A{
			bson.M{"assignedTo": *f.Involves},
			bson.M{"createdBy": *f.Involves},
		}
	}
	switch {
	case f.Status != "":
		q["status"] = f.Status
	case f.StatusNot != "":
		q["status"] = bson.M{"$ne": f.StatusNot}
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}

	due := bson.M{}
	if f.DueBefore != nil {
		due["$lt"] = *f.DueBefore
	}
	if f.DueFrom != nil {
		due["$gte"] = *f.DueFrom
	}
	if f.DueUntil != nil {
		due["$lte"] = *f.DueUntil
	}
	if len(due) > 0 {
		q["dueDate"] = due
	}
	return q
}

// Match evaluates the filter against t in memory.
func (f TaskFilter) Match(t *structs.Task) bool {
	if f.Assignee != nil && !t.IsAssignee(*f.Assignee) {
		return false
	}
	if f.Involves != nil && !t.References(*f.Involves) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Status == "" && f.StatusNot != "" && t.Status == f.StatusNot {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.DueBefore != nil && !t.DueDate.Before(*f.DueBefore) {
		return false
	}
	if f.DueFrom != nil && t.DueDate.Before(*f.DueFrom) {
		return false
	}
	if f.DueUntil != nil && t.DueDate.After(*f.DueUntil) {
		return false
	}
	return true
}

// Sort orders task listings.
type Sort int

const (
	SortCreatedDesc Sort = iota
	SortDueAsc
)

// ListOptions controls ordering and size of task listings.
type ListOptions struct {
	Sort  Sort
	Limit int64
}

func (o ListOptions) bson() bson.D {
	if o.Sort == SortDueAsc {
		return bson.D{{Key: "dueDate", Value: 1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}

func (o ListOptions) apply(tasks []*structs.Task) []*structs.Task {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if o.Sort == SortDueAsc {
			if !a.DueDate.Equal(b.DueDate) {
				return a.DueDate.Before(b.DueDate)
			}
			return a.ID.Hex() < b.ID.Hex()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.Hex() > b.ID.Hex()
	})
	if o.Limit > 0 && int64(len(tasks)) > o.Limit {
		tasks = tasks[:o.Limit]
	}
	return tasks
}
