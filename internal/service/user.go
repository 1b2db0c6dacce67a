package service

import (
	"context"
	"errors"

	"github.com/ncobase/taskmanager/internal/data"
	"github.com/ncobase/taskmanager/internal/data/repository"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgUserNotFound   = "User not found"
	msgEmailTaken     = "User already exists"
	msgUserReferenced = "User is still referenced by tasks; reassign or delete them first"
	msgUserDeleted    = "User deleted successfully"
)

// UserService handles user-related business logic.
type UserService struct {
	data   *data.Data
	tasks  *TaskService
	logger *logger.Logger
}

// NewUserService creates a new user service. tasks evicts dashboards showing an updated user.
func NewUserService(d *data.Data, tasks *TaskService, logger *logger.Logger) *UserService {
	return &UserService{
		data:   d,
		tasks:  tasks,
		logger: logger,
	}
}

// ListUsers returns every member with per-status counts of the tasks assigned to them.
func (s *UserService) ListUsers(ctx context.Context) ([]*structs.UserWithCounts, error) {
	users, err := s.data.UserRepo.List(ctx, repository.UserFilter{ExcludeRole: structs.RoleAdmin})
	if err != nil {
		return nil, err
	}
	counts, err := s.data.TaskRepo.CountByAssignee(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*structs.UserWithCounts, 0, len(users))
	for _, u := range users {
		out = append(out, &structs.UserWithCounts{User: *u, StatusCounts: counts[u.ID]})
	}
	return out, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*structs.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NotFound(msgUserNotFound)
	}
	u, err := s.data.UserRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(msgUserNotFound)
		}
		return nil, err
	}
	return u, nil
}

// UpdateUser applies an administrative partial update.
func (s *UserService) UpdateUser(ctx context.Context, id string, req *structs.UpdateUserRequest) (*structs.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = normalizeEmail(req.Email)
	}
	if req.Role != "" {
		u.Role = req.Role
	}
	if req.ProfileImageURL != "" {
		u.ProfileImageURL = req.ProfileImageURL
	}

	updated, err := s.data.UserRepo.Update(ctx, u)
	if err != nil {
		return nil, userWriteError(err)
	}
	s.tasks.EvictUserDashboards(ctx, updated.ID)

	s.logger.Info(ctx, "User updated", "user_id", updated.ID.Hex())
	return updated, nil
}

// DeleteUser removes a user that no task references as assignee or creator.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*Result, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	uid := u.ID
	n, err := s.data.TaskRepo.Count(ctx, repository.TaskFilter{Involves: &uid})
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, Conflict(msgUserReferenced)
	}

	if err := s.data.UserRepo.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(msgUserNotFound)
		}
		return nil, err
	}
	s.logger.Info(ctx, "User deleted", "user_id", uid.Hex())
	return &Result{Message: msgUserDeleted}, nil
}

func userWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return BadInput(msgEmailTaken)
	case errors.Is(err, repository.ErrNotFound):
		return NotFound(msgUserNotFound)
	default:
		return err
	}
}
