package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, task *structs.Task) (*structs.Task, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*structs.Task, error)
	Find(ctx context.Context, filter TaskFilter, opts ListOptions) ([]*structs.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	Update(ctx context.Context, task *structs.Task) (*structs.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByAssignee(ctx context.Context) (map[primitive.ObjectID]structs.StatusCounts, error)
}

type taskRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(db *mongo.Database, logger *logger.Logger) TaskRepository {
	collection := db.Collection("tasks")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignedTo", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(ctx, "failed to create task indexes", "error", err)
	}

	return &taskRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *structs.Task) (*structs.Task, error) {
	now := time.Now()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now
	normalize(task)

	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		r.logger.Error(ctx, "failed to create task", "error", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// FindByID retrieves a task by ID.
func (r *taskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*structs.Task, error) {
	var task structs.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Error(ctx, "failed to find task", "id", id.Hex(), "error", err)
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	normalize(&task)
	return &task, nil
}

// Find retrieves the tasks matching filter.
func (r *taskRepository) Find(ctx context.Context, filter TaskFilter, opts ListOptions) ([]*structs.Task, error) {
	findOpts := options.Find().SetSort(opts.bson())
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter.BSON(), findOpts)
	if err != nil {
		r.logger.Error(ctx, "failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []*structs.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		r.logger.Error(ctx, "failed to decode tasks", "error", err)
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	for _, t := range tasks {
		normalize(t)
	}
	return tasks, nil
}

// Count returns the number of tasks matching filter.
func (r *taskRepository) Count(ctx context.Context, filter TaskFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter.BSON())
	if err != nil {
		r.logger.Error(ctx, "failed to count tasks", "error", err)
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// Update replaces a stored task.
func (r *taskRepository) Update(ctx context.Context, task *structs.Task) (*structs.Task, error) {
	task.UpdatedAt = time.Now()
	normalize(task)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		r.logger.Error(ctx, "failed to update task", "id", task.ID.Hex(), "error", err)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return task, nil
}

// Delete deletes a task by ID.
func (r *taskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error(ctx, "failed to delete task", "id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByAssignee counts tasks per assignee and status.
func (r *taskRepository) CountByAssignee(ctx context.Context) (map[primitive.ObjectID]structs.StatusCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$assignedTo"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "user", Value: "$assignedTo"},
				{Key: "status", Value: "$status"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error(ctx, "failed to aggregate task counts", "error", err)
		return nil, fmt.Errorf("failed to aggregate task counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			User   primitive.ObjectID `bson:"user"`
			Status string             `bson:"status"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode task counts: %w", err)
	}

	counts := make(map[primitive.ObjectID]structs.StatusCounts)
	for _, row := range rows {
		c := counts[row.ID.User]
		c.Add(row.ID.Status, row.Count)
		counts[row.ID.User] = c
	}
	return counts, nil
}

// normalize keeps slice fields non-nil so they encode as arrays.
func normalize(t *structs.Task) {
	if t.AssignedTo == nil {
		t.AssignedTo = []primitive.ObjectID{}
	}
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	if t.TodoChecklist == nil {
		t.TodoChecklist = []structs.ChecklistItem{}
	}
}
