package service

import (
	"context"

	"github.com/ncobase/taskmanager/internal/data/repository"
	"github.com/ncobase/taskmanager/internal/structs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dashboard returns the aggregate view of the caller's scope: every task for
// an admin, the assigned tasks for a member.
func (s *TaskService) Dashboard(ctx context.Context, scope structs.Scope) (*structs.Dashboard, error) {
	key := dashboardKey(scope)
	if cached, err := s.dashboards.Get(ctx, key); err != nil {
		s.logger.Warn(ctx, "failed to read dashboard cache", "key", key, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	d, err := s.buildDashboard(ctx, scopeFilter(scope))
	if err != nil {
		return nil, err
	}

	if err := s.dashboards.Set(ctx, key, d); err != nil {
		s.logger.Warn(ctx, "failed to write dashboard cache", "key", key, "error", err)
	}
	return d, nil
}

// AdminDashboard returns the global dashboard.
func (s *TaskService) AdminDashboard(ctx context.Context, scope structs.Scope) (*structs.Dashboard, error) {
	if !scope.IsAdmin() {
		return nil, Forbidden("Access denied. Admin only.")
	}
	return s.Dashboard(ctx, scope)
}

// UserDashboard returns the dashboard of the tasks assigned to the caller, admins included.
func (s *TaskService) UserDashboard(ctx context.Context, scope structs.Scope) (*structs.Dashboard, error) {
	return s.Dashboard(ctx, structs.MemberScope(scope.UserID))
}

func (s *TaskService) buildDashboard(ctx context.Context, base repository.TaskFilter) (*structs.Dashboard, error) {
	repo := s.data.TaskRepo
	d := &structs.Dashboard{}

	counts := []struct {
		filter repository.TaskFilter
		dst    *int64
	}{
		{base, &d.TaskSummary.Total},
		{base.WithStatus(structs.StatusPending), &d.TaskSummary.Pending},
		{base.WithStatus(structs.StatusInProgress), &d.TaskSummary.InProgress},
		{base.WithStatus(structs.StatusCompleted), &d.TaskSummary.Completed},
		{base.WithPriority(structs.PriorityHigh), &d.PrioritySummary.High},
		{base.WithPriority(structs.PriorityMedium), &d.PrioritySummary.Medium},
		{base.WithPriority(structs.PriorityLow), &d.PrioritySummary.Low},
	}
	for _, c := range counts {
		n, err := repo.Count(ctx, c.filter)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	now := s.now()
	weekAhead := now.Add(upcomingWindow)

	open := base
	open.StatusNot = structs.StatusCompleted

	overdue := open
	overdue.DueBefore = &now
	upcoming := open
	upcoming.DueFrom = &now
	upcoming.DueUntil = &weekAhead

	lists := []struct {
		filter repository.TaskFilter
		opts   repository.ListOptions
		dst    *[]*structs.TaskView
	}{
		{overdue, repository.ListOptions{Sort: repository.SortDueAsc}, &d.OverdueTasks},
		{upcoming, repository.ListOptions{Sort: repository.SortDueAsc}, &d.UpcomingTasks},
		{base, repository.ListOptions{Sort: repository.SortCreatedDesc, Limit: recentTasksLimit}, &d.RecentTasks},
	}
	for _, l := range lists {
		tasks, err := repo.Find(ctx, l.filter, l.opts)
		if err != nil {
			return nil, err
		}
		views, err := s.populate(ctx, tasks)
		if err != nil {
			return nil, err
		}
		*l.dst = views
	}

	return d, nil
}

func dashboardKey(scope structs.Scope) string {
	if scope.IsAdmin() {
		return adminDashboardKey
	}
	return memberDashboardPrefix + scope.UserID.Hex()
}

// evictDashboards drops the cached admin dashboard and those of the given assignees.
func (s *TaskService) evictDashboards(ctx context.Context, assignees []primitive.ObjectID) {
	keys := []string{adminDashboardKey}
	seen := map[primitive.ObjectID]bool{}
	for _, a := range assignees {
		if !seen[a] {
			seen[a] = true
			keys = append(keys, memberDashboardPrefix+a.Hex())
		}
	}
	if err := s.dashboards.Delete(ctx, keys...); err != nil {
		s.logger.Warn(ctx, "failed to evict dashboard cache", "error", err)
	}
}

// EvictUserDashboards drops the cached dashboards that show userID, which are the admin
// dashboard and those of everyone sharing a task with the user.
func (s *TaskService) EvictUserDashboards(ctx context.Context, userID primitive.ObjectID) {
	tasks, err := s.data.TaskRepo.Find(ctx, repository.TaskFilter{Assignee: &userID}, repository.ListOptions{})
	if err != nil {
		s.logger.Warn(ctx, "failed to find dashboards to evict", "user_id", userID.Hex(), "error", err)
		tasks = nil
	}
	assignees := []primitive.ObjectID{userID}
	for _, t := range tasks {
		assignees = append(assignees, t.AssignedTo...)
	}
	s.evictDashboards(ctx, assignees)
}
