package service

import (
	"context"
	"testing"
	"time"

	"github.com/ncobase/taskmanager/internal/data"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/security/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	data   *data.Data
	admin  *structs.User
	alice  *structs.User
	bob    *structs.User
	carol  *structs.User
	ctx    context.Context
	tokens *jwt.TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d := data.NewMemory()
	tokens := jwt.NewTokenManager("test-secret")
	f := &fixture{
		data:   d,
		ctx:    context.Background(),
		tokens: tokens,
		svc: New(Options{
			Data:             d,
			Logger:           logger.Discard(),
			Tokens:           tokens,
			AdminInviteToken: "invite",
			Now:              func() time.Time { return fixedNow },
		}),
	}
	f.admin = f.user(t, "Admin", "admin@example.com", structs.RoleAdmin)
	f.alice = f.user(t, "Alice", "alice@example.com", structs.RoleMember)
	f.bob = f.user(t, "Bob", "bob@example.com", structs.RoleMember)
	f.carol = f.user(t, "Carol", "carol@example.com", structs.RoleMember)
	return f
}

func (f *fixture) user(t *testing.T, name, email, role string) *structs.User {
	t.Helper()
	u, err := f.data.UserRepo.Create(f.ctx, &structs.User{Name: name, Email: email, Role: role})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func (f *fixture) adminScope() structs.Scope {
	return structs.AdminScope(f.admin.ID)
}

func (f *fixture) createTask(t *testing.T, title, due string, assignees []primitive.ObjectID, checklist ...structs.ChecklistItem) *structs.TaskView {
	t.Helper()
	raw := "["
	for i, a := range assignees {
		if i > 0 {
			raw += ","
		}
		raw += `"` + a.Hex() + `"`
	}
	raw += "]"

	res, err := f.svc.Task.CreateTask(f.ctx, f.adminScope(), &structs.CreateTaskRequest{
		Title:         title,
		Description:   title + " description",
		DueDate:       due,
		AssignedTo:    []byte(raw),
		TodoChecklist: checklist,
	})
	if err != nil {
		t.Fatalf("CreateTask(%s) error = %v", title, err)
	}
	return res.Task
}
