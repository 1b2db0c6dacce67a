package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/taskmanager/internal/structs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryTaskRepository is an in-process TaskRepository.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[primitive.ObjectID]*structs.Task
	now   func() time.Time
}

// NewMemoryTaskRepository creates an empty in-memory task repository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[primitive.ObjectID]*structs.Task),
		now:   time.Now,
	}
}

var _ TaskRepository = (*MemoryTaskRepository)(nil)

func (r *MemoryTaskRepository) Create(_ context.Context, task *structs.Task) (*structs.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now
	normalize(task)
	r.tasks[task.ID] = task.Clone()
	return task.Clone(), nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id primitive.ObjectID) (*structs.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.Clone(), nil
}

func (r *MemoryTaskRepository) Find(_ context.Context, filter TaskFilter, opts ListOptions) ([]*structs.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*structs.Task{}
	for _, t := range r.tasks {
		if filter.Match(t) {
			out = append(out, t.Clone())
		}
	}
	return opts.apply(out), nil
}

func (r *MemoryTaskRepository) Count(_ context.Context, filter TaskFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, t := range r.tasks {
		if filter.Match(t) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, task *structs.Task) (*structs.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return nil, ErrNotFound
	}
	task.CreatedAt = stored.CreatedAt
	task.UpdatedAt = r.now()
	normalize(task)
	r.tasks[task.ID] = task.Clone()
	return task.Clone(), nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryTaskRepository) CountByAssignee(_ context.Context) (map[primitive.ObjectID]structs.StatusCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[primitive.ObjectID]structs.StatusCounts)
	for _, t := range r.tasks {
		for _, a := range t.AssignedTo {
			c := counts[a]
			c.Add(t.Status, 1)
			counts[a] = c
		}
	}
	return counts, nil
}

// MemoryUserRepository is an in-process UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*structs.User
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*structs.User)}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func cloneUser(u *structs.User) *structs.User {
	c := *u
	return &c
}

func (r *MemoryUserRepository) emailTaken(email string, except primitive.ObjectID) bool {
	for id, u := range r.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *MemoryUserRepository) Create(_ context.Context, user *structs.User) (*structs.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, primitive.NilObjectID) {
		return nil, ErrDuplicate
	}
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*structs.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*structs.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*structs.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*structs.User{}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, cloneUser(u))
		}
	}
	sortUsers(out)
	return out, nil
}

func (r *MemoryUserRepository) List(_ context.Context, filter UserFilter) ([]*structs.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*structs.User{}
	for _, u := range r.users {
		if filter.ExcludeRole != "" && u.Role == filter.ExcludeRole {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sortUsers(out)
	return out, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *structs.User) (*structs.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return nil, ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, ErrDuplicate
	}
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// same order as the mongo listing: name, then id
func sortUsers(users []*structs.User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID.Hex() < users[j].ID.Hex()
	})
}
