package model

import "time"

// TodoStats are the per-user counts shown next to the todo list.
type TodoStats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Active       int `json:"active"`
	HighPriority int `json:"high_priority"`
}

// DashboardSummary aggregates record counts across every user-scoped table.
type DashboardSummary struct {
	PerTable     map[string]int        `json:"per_table"`
	TotalRecords int                   `json:"total_records"`
	Todos        DashboardTodoCounts   `json:"todos"`
	Threads      DashboardThreadCounts `json:"threads"`
}

type DashboardTodoCounts struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Completed    int `json:"completed"`
	HighPriority int `json:"high_priority"`
	Overdue      int `json:"overdue"`
}

type DashboardThreadCounts struct {
	Active int `json:"active"`
}

// RecentTodo is the projection used by the dashboard activity table.
type RecentTodo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Priority  Priority  `json:"priority"`
	UpdatedAt time.Time `json:"updated_at"`
}
