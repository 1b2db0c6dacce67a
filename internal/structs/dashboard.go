package structs

// TaskSummary counts tasks per status.
type TaskSummary struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

// PrioritySummary counts tasks per priority.
type PrioritySummary struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
}

// Dashboard is the response of the dashboard endpoints.
type Dashboard struct {
	TaskSummary     TaskSummary     `json:"taskSummary"`
	PrioritySummary PrioritySummary `json:"prioritySummary"`
	OverdueTasks    []*TaskView     `json:"overdueTasks"`
	UpcomingTasks   []*TaskView     `json:"upcomingTasks"`
	RecentTasks     []*TaskView     `json:"recentTasks"`
}
