package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ncobase/taskmanager/internal/data"
	"github.com/ncobase/taskmanager/internal/data/repository"
	"github.com/ncobase/taskmanager/internal/report"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Export is a rendered report file.
type Export struct {
	Filename string
	Body     *bytes.Buffer
}

var taskColumns = []report.Column{
	{Header: "Task ID", Width: 26},
	{Header: "Title", Width: 30},
	{Header: "Description", Width: 50},
	{Header: "Priority", Width: 15},
	{Header: "Status", Width: 15},
	{Header: "Due Date", Width: 20},
	{Header: "Assigned To", Width: 40},
}

var userColumns = []report.Column{
	{Header: "User Name", Width: 30},
	{Header: "Email", Width: 30},
	{Header: "Total Assigned Tasks", Width: 20},
	{Header: "Pending Tasks", Width: 15},
	{Header: "In Progress Tasks", Width: 18},
	{Header: "Completed Tasks", Width: 16},
}

// ReportService builds spreadsheet exports.
type ReportService struct {
	data   *data.Data
	logger *logger.Logger
	now    func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(d *data.Data, logger *logger.Logger) *ReportService {
	return &ReportService{data: d, logger: logger, now: time.Now}
}

// ExportTasks renders every task with its assignees.
func (s *ReportService) ExportTasks(ctx context.Context) (*Export, error) {
	tasks, err := s.data.TaskRepo.Find(ctx, repository.TaskFilter{}, repository.ListOptions{Sort: repository.SortCreatedDesc})
	if err != nil {
		return nil, err
	}
	views, err := populateTasks(ctx, s.data.UserRepo, tasks)
	if err != nil {
		return nil, err
	}

	body, err := report.Render(report.Sheet{Name: "Tasks Report", Columns: taskColumns, Rows: TaskRows(views)})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Task report exported", "rows", len(views))
	return &Export{Filename: s.filename("tasks_report"), Body: body}, nil
}

// ExportUsers renders one row per user with the counts of the tasks assigned to them.
func (s *ReportService) ExportUsers(ctx context.Context) (*Export, error) {
	users, err := s.data.UserRepo.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	counts, err := s.data.TaskRepo.CountByAssignee(ctx)
	if err != nil {
		return nil, err
	}

	body, err := report.Render(report.Sheet{Name: "Users Task Report", Columns: userColumns, Rows: UserRows(users, counts)})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "User report exported", "rows", len(users))
	return &Export{Filename: s.filename("users_tasks_report"), Body: body}, nil
}

func (s *ReportService) filename(prefix string) string {
	return fmt.Sprintf("%s_%d.xlsx", prefix, s.now().UnixMilli())
}

// TaskRows flattens tasks into report rows.
func TaskRows(tasks []*structs.TaskView) [][]any {
	rows := make([][]any, 0, len(tasks))
	for _, t := range tasks {
		assignees := make([]string, 0, len(t.AssignedTo))
		for _, u := range t.AssignedTo {
			assignees = append(assignees, fmt.Sprintf("%s (%s)", u.Name, u.Email))
		}
		rows = append(rows, []any{
			t.ID.Hex(),
			t.Title,
			t.Description,
			t.Priority,
			t.Status,
			t.DueDate.UTC().Format(time.DateOnly),
			strings.Join(assignees, ", "),
		})
	}
	return rows
}

// UserRows builds one row per user from counts keyed by assignee id.
func UserRows(users []*structs.User, counts map[primitive.ObjectID]structs.StatusCounts) [][]any {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		c := counts[u.ID]
		rows = append(rows, []any{u.Name, u.Email, c.Total(), c.Pending, c.InProgress, c.Completed})
	}
	return rows
}
