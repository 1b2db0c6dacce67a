package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ncobase/taskmanager/internal/structs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateTaskDefaultsAndPopulation(t *testing.T) {
	f := newFixture(t)
	v := f.createTask(t, "Plan", "2025-03-20", []primitive.ObjectID{f.alice.ID, f.bob.ID})

	if v.Status != structs.StatusPending || v.Priority != structs.PriorityMedium || v.Progress != 0 {
		t.Errorf("defaults = (%q, %q, %d)", v.Status, v.Priority, v.Progress)
	}
	if v.CreatedBy != f.admin.ID {
		t.Errorf("CreatedBy = %s, want admin", v.CreatedBy.Hex())
	}
	if len(v.AssignedTo) != 2 || v.AssignedTo[0].Name != "Alice" || v.AssignedTo[1].Email != "bob@example.com" {
		t.Errorf("AssignedTo = %+v", v.AssignedTo)
	}
	if !v.DueDate.Equal(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DueDate = %v", v.DueDate)
	}
}

func TestCreateTaskRejectsBadAssignees(t *testing.T) {
	f := newFixture(t)
	for _, raw := range []string{"", "null", `"` + f.alice.ID.Hex() + `"`, `{"id":1}`, `[1,2]`, `["not-an-id"]`} {
		_, err := f.svc.Task.CreateTask(f.ctx, f.adminScope(), &structs.CreateTaskRequest{
			Title: "x", Description: "x", DueDate: "2025-03-20", AssignedTo: []byte(raw),
		})
		var se *Error
		if !errors.As(err, &se) || !errors.Is(err, ErrBadInput) || se.Message != msgInvalidAssignees {
			t.Errorf("CreateTask(assignedTo=%s) error = %v, want %q", raw, err, msgInvalidAssignees)
		}
	}

	_, err := f.svc.Task.CreateTask(f.ctx, structs.MemberScope(f.alice.ID), &structs.CreateTaskRequest{Title: "x", DueDate: "2025-03-20"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("member CreateTask error = %v, want ErrForbidden", err)
	}
}

func TestCreateTaskWithStatus(t *testing.T) {
	f := newFixture(t)
	create := func(status string, checklist ...structs.ChecklistItem) (*Result, error) {
		return f.svc.Task.CreateTask(f.ctx, f.adminScope(), &structs.CreateTaskRequest{
			Title: "x", Description: "x", DueDate: "2025-03-20", AssignedTo: []byte("[]"),
			Status: status, TodoChecklist: checklist,
		})
	}

	res, err := create(structs.StatusInProgress)
	if err != nil {
		t.Fatalf("CreateTask(In Progress) error = %v", err)
	}
	if res.Task.Status != structs.StatusInProgress || res.Task.Progress != 0 {
		t.Errorf("In Progress without checklist = (%q, %d)", res.Task.Status, res.Task.Progress)
	}

	res, err = create(structs.StatusCompleted, items(true, false)...)
	if err != nil {
		t.Fatalf("CreateTask(Completed) error = %v", err)
	}
	if res.Task.Status != structs.StatusCompleted || res.Task.Progress != 100 || res.Task.CompletedCount != 2 {
		t.Errorf("Completed with checklist = (%q, %d, %d done)", res.Task.Status, res.Task.Progress, res.Task.CompletedCount)
	}

	if _, err := create(structs.StatusPending, items(true, false)...); !errors.Is(err, ErrBadInput) {
		t.Errorf("CreateTask(Pending) with a started checklist error = %v, want ErrBadInput", err)
	}
}

func TestChecklistReplacementDerivesProgress(t *testing.T) {
	f := newFixture(t)
	v := f.createTask(t, "Four steps", "2025-03-20", []primitive.ObjectID{f.alice.ID}, items(false, false, false, false)...)

	res, err := f.svc.Task.SetChecklist(f.ctx, structs.MemberScope(f.alice.ID), v.ID.Hex(), items(true, false, false, false))
	if err != nil {
		t.Fatalf("SetChecklist() error = %v", err)
	}
	if res.Task.Progress != 25 || res.Task.Status != structs.StatusInProgress {
		t.Errorf("after 1/4 = (%d, %q), want (25, In Progress)", res.Task.Progress, res.Task.Status)
	}
	if res.CompletedCount != 1 || res.TotalCount != 4 {
		t.Errorf("counts = %d/%d, want 1/4", res.CompletedCount, res.TotalCount)
	}

	res, _ = f.svc.Task.SetChecklist(f.ctx, f.adminScope(), v.ID.Hex(), items(true, true, true, true))
	if res.Task.Status != structs.StatusCompleted || res.Task.Progress != 100 {
		t.Errorf("all done = (%d, %q)", res.Task.Progress, res.Task.Status)
	}
	res, _ = f.svc.Task.SetChecklist(f.ctx, f.adminScope(), v.ID.Hex(), items(false, false))
	if res.Task.Status != structs.StatusPending || res.Task.Progress != 0 {
		t.Errorf("none done = (%d, %q)", res.Task.Progress, res.Task.Status)
	}

	if _, err := f.svc.Task.SetChecklist(f.ctx, structs.MemberScope(f.bob.ID), v.ID.Hex(), items(true)); !errors.Is(err, ErrForbidden) {
		t.Errorf("unassigned SetChecklist error = %v, want ErrForbidden", err)
	}
}

func TestSetStatusByUnassignedMemberIsForbidden(t *testing.T) {
	f := newFixture(t)
	v := f.createTask(t, "Pair", "2025-03-20", []primitive.ObjectID{f.alice.ID, f.bob.ID})

	_, err := f.svc.Task.SetStatus(f.ctx, structs.MemberScope(f.carol.ID), v.ID.Hex(), structs.StatusCompleted)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("SetStatus() error = %v, want ErrForbidden", err)
	}
	stored, _ := f.data.TaskRepo.FindByID(f.ctx, v.ID)
	if stored.Status != structs.StatusPending || !stored.UpdatedAt.Equal(v.UpdatedAt) {
		t.Errorf("task modified by a forbidden call: %+v", stored)
	}

	if _, err := f.svc.Task.SetStatus(f.ctx, structs.MemberScope(f.alice.ID), v.ID.Hex(), "Done"); !errors.Is(err, ErrBadInput) {
		t.Errorf("SetStatus(Done) error = %v, want ErrBadInput", err)
	}
	if _, err := f.svc.Task.SetStatus(f.ctx, structs.MemberScope(f.alice.ID), primitive.NewObjectID().Hex(), structs.StatusPending); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetStatus(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSetStatusCompletedForcesChecklist(t *testing.T) {
	f := newFixture(t)
	v := f.createTask(t, "Steps", "2025-03-20", []primitive.ObjectID{f.alice.ID}, items(false, true, false)...)

	res, err := f.svc.Task.SetStatus(f.ctx, structs.MemberScope(f.alice.ID), v.ID.Hex(), structs.StatusCompleted)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if res.Message != msgTaskStatusUpdated || res.Task.Progress != 100 || res.Task.CompletedCount != 3 {
		t.Errorf("SetStatus(Completed) = %+v", res.Task)
	}
}

func TestListTasksVisibilityAndSummary(t *testing.T) {
	f := newFixture(t)
	a := f.createTask(t, "A", "2025-03-20", []primitive.ObjectID{f.alice.ID})
	f.createTask(t, "B", "2025-03-21", []primitive.ObjectID{f.bob.ID})
	c := f.createTask(t, "C", "2025-03-22", []primitive.ObjectID{f.alice.ID, f.bob.ID}, items(true, false)...)
	if _, err := f.svc.Task.SetStatus(f.ctx, f.adminScope(), a.ID.Hex(), structs.StatusCompleted); err != nil {
		t.Fatal(err)
	}

	list, err := f.svc.Task.ListTasks(f.ctx, f.adminScope(), structs.StatusPending)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(list.Tasks) != 1 || list.Tasks[0].Title != "B" {
		t.Errorf("admin Pending tasks = %d", len(list.Tasks))
	}
	want := structs.StatusSummary{All: 3, PendingCount: 1, InProgressCount: 1, CompletedCount: 1}
	if list.StatusSummary != want {
		t.Errorf("StatusSummary = %+v, want %+v", list.StatusSummary, want)
	}

	list, _ = f.svc.Task.ListTasks(f.ctx, structs.MemberScope(f.alice.ID), "")
	if len(list.Tasks) != 2 {
		t.Fatalf("alice sees %d tasks, want 2", len(list.Tasks))
	}
	for _, v := range list.Tasks {
		if !v.IsAssignee(f.alice.ID) {
			t.Errorf("alice received unassigned task %s", v.Title)
		}
	}
	if list.Tasks[0].ID != c.ID {
		t.Errorf("tasks not sorted newest first")
	}
	if list.StatusSummary.All != 2 || list.StatusSummary.CompletedCount != 1 {
		t.Errorf("alice summary = %+v", list.StatusSummary)
	}

	if _, err := f.svc.Task.ListTasks(f.ctx, f.adminScope(), "Blocked"); !errors.Is(err, ErrBadInput) {
		t.Errorf("ListTasks(Blocked) error = %v, want ErrBadInput", err)
	}
}

func TestGetTaskVisibility(t *testing.T) {
	f := newFixture(t)
	v := f.createTask(t, "Private", "2025-03-20", []primitive.ObjectID{f.alice.ID})

	if _, err := f.svc.Task.GetTask(f.ctx, structs.MemberScope(f.alice.ID), v.ID.Hex()); err != nil {
		t.Errorf("assignee GetTask() error = %v", err)
	}
	if _, err := f.svc.Task.GetTask(f.ctx, structs.MemberScope(f.bob.ID), v.ID.Hex()); !errors.Is(err, ErrForbidden) {
		t.Errorf("other member GetTask() error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.Task.GetTask(f.ctx, f.adminScope(), "zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTask(bad id) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	f := newFixture(t)
	v := f.createTask(t, "Original", "2025-03-20", []primitive.ObjectID{f.alice.ID})

	res, err := f.svc.Task.UpdateTask(f.ctx, f.adminScope(), v.ID.Hex(), &structs.UpdateTaskRequest{
		Priority:      structs.PriorityHigh,
		AssignedTo:    []byte(`["` + f.bob.ID.Hex() + `"]`),
		TodoChecklist: items(true, true),
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	got := res.Task
	if got.Title != "Original" || got.Description != "Original description" {
		t.Errorf("empty fields did not keep stored values: %q %q", got.Title, got.Description)
	}
	if got.Priority != structs.PriorityHigh || !got.IsAssignee(f.bob.ID) || got.IsAssignee(f.alice.ID) {
		t.Errorf("update not applied: %+v", got.Task)
	}
	if got.Status != structs.StatusCompleted || got.Progress != 100 {
		t.Errorf("checklist not reconciled: (%q, %d)", got.Status, got.Progress)
	}

	_, err = f.svc.Task.UpdateTask(f.ctx, f.adminScope(), v.ID.Hex(), &structs.UpdateTaskRequest{AssignedTo: []byte(`"x"`)})
	if !errors.Is(err, ErrBadInput) {
		t.Errorf("UpdateTask(non-array assignedTo) error = %v, want ErrBadInput", err)
	}
	_, err = f.svc.Task.UpdateTask(f.ctx, structs.MemberScope(f.bob.ID), v.ID.Hex(), &structs.UpdateTaskRequest{Title: "x"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("member UpdateTask error = %v, want ErrForbidden", err)
	}
}

func TestDeleteTaskPermissions(t *testing.T) {
	f := newFixture(t)
	v := f.createTask(t, "Keep", "2025-03-20", []primitive.ObjectID{f.alice.ID})

	if _, err := f.svc.Task.DeleteTask(f.ctx, structs.MemberScope(f.alice.ID), v.ID.Hex()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("assignee DeleteTask error = %v, want ErrForbidden", err)
	}
	if _, err := f.data.TaskRepo.FindByID(f.ctx, v.ID); err != nil {
		t.Fatalf("task gone after forbidden delete: %v", err)
	}

	res, err := f.svc.Task.DeleteTask(f.ctx, f.adminScope(), v.ID.Hex())
	if err != nil || res.Message != msgTaskDeleted {
		t.Fatalf("admin DeleteTask = %v, %v", res, err)
	}
	if _, err := f.svc.Task.DeleteTask(f.ctx, f.adminScope(), v.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteTask error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTaskByCreator(t *testing.T) {
	f := newFixture(t)
	task, err := f.data.TaskRepo.Create(f.ctx, &structs.Task{
		Title: "Mine", Status: structs.StatusPending, CreatedBy: f.bob.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Task.DeleteTask(f.ctx, structs.MemberScope(f.bob.ID), task.ID.Hex()); err != nil {
		t.Errorf("creator DeleteTask error = %v", err)
	}
}
