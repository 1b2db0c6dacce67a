package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskRows(t *testing.T) {
	id := primitive.NewObjectID()
	rows := TaskRows([]*structs.TaskView{{
		Task: structs.Task{
			ID:       id,
			Title:    "Ship",
			Priority: structs.PriorityHigh,
			Status:   structs.StatusPending,
			DueDate:  time.Date(2025, 4, 1, 23, 0, 0, 0, time.UTC),
		},
		AssignedTo: []*structs.UserSummary{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com"},
		},
	}})

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d", len(rows))
	}
	row := rows[0]
	if row[0] != id.Hex() || row[5] != "2025-04-01" {
		t.Errorf("row = %v", row)
	}
	if row[6] != "Alice (alice@example.com), Bob (bob@example.com)" {
		t.Errorf("assigned to = %q", row[6])
	}
}

func TestUserRows(t *testing.T) {
	alice := &structs.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com"}
	bob := &structs.User{ID: primitive.NewObjectID(), Name: "Bob", Email: "bob@example.com"}
	counts := map[primitive.ObjectID]structs.StatusCounts{
		alice.ID: {Pending: 2, InProgress: 1, Completed: 3},
	}

	rows := UserRows([]*structs.User{alice, bob}, counts)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want one per user", len(rows))
	}
	if rows[0][2] != int64(6) || rows[0][3] != int64(2) || rows[0][5] != int64(3) {
		t.Errorf("alice row = %v", rows[0])
	}
	if rows[1][2] != int64(0) {
		t.Errorf("bob row = %v", rows[1])
	}
}

func TestExportUsers(t *testing.T) {
	f := newFixture(t)
	f.createTask(t, "A", "2025-03-20", []primitive.ObjectID{f.alice.ID})

	export, err := f.svc.Report.ExportUsers(f.ctx)
	if err != nil {
		t.Fatalf("ExportUsers() error = %v", err)
	}
	if !strings.HasPrefix(export.Filename, "users_tasks_report_") || !strings.HasSuffix(export.Filename, ".xlsx") {
		t.Errorf("Filename = %q", export.Filename)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(export.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows("Users Task Report")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	// header plus admin, alice, bob, carol
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}
	for _, row := range rows[1:] {
		if row[0] == "Alice" && row[2] != "1" {
			t.Errorf("alice row = %v", row)
		}
	}
}

func TestExportTasks(t *testing.T) {
	f := newFixture(t)
	f.createTask(t, "A", "2025-03-20", []primitive.ObjectID{f.alice.ID})

	export, err := f.svc.Report.ExportTasks(f.ctx)
	if err != nil {
		t.Fatalf("ExportTasks() error = %v", err)
	}
	if !strings.HasPrefix(export.Filename, "tasks_report_") {
		t.Errorf("Filename = %q", export.Filename)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(export.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer wb.Close()
	rows, _ := wb.GetRows("Tasks Report")
	if len(rows) != 2 || rows[1][6] != "Alice (alice@example.com)" {
		t.Errorf("rows = %v", rows)
	}
}
