package usecase

import (
	"context"
	"sort"

	"main/model"
)

const (
	DefaultRecentLimit = 5
	MaxRecentLimit     = 100
)

// ThreadCounter and MessageCounter are the slices of the thread and message
// stores the dashboard needs. *repository.ThreadsRepo and
// *repository.MessagesRepo satisfy them.
type ThreadCounter interface {
	CountUserThreads(ctx context.Context, userID string) (int, error)
	GetThreadsByStatus(ctx context.Context, userID string, status model.ThreadStatus) ([]*model.Thread, error)
}

type MessageCounter interface {
	CountUserMessages(ctx context.Context, userID string) (int, error)
}

type PreferencesCounter interface {
	CountUserPreferences(ctx context.Context, userID string) (int, error)
}

// DashboardService builds read-only views composed from the per-entity
// stores. Each table is counted through its own typed call.
type DashboardService struct {
	todos       TodoStore
	threads     ThreadCounter
	messages    MessageCounter
	preferences PreferencesCounter
}

func NewDashboardService(todos TodoStore, threads ThreadCounter, messages MessageCounter, preferences PreferencesCounter) *DashboardService {
	return &DashboardService{
		todos:       todos,
		threads:     threads,
		messages:    messages,
		preferences: preferences,
	}
}

// Summary counts the user's records in every table and attaches the todo
// stats and active-thread count. Recomputed from the live record set on every
// call.
func (svc *DashboardService) Summary(ctx context.Context, userID string) (*model.DashboardSummary, error) {
	todoCount, err := svc.todos.CountUserTodos(ctx, userID)
	if err != nil {
		return nil, err
	}
	threadCount, err := svc.threads.CountUserThreads(ctx, userID)
	if err != nil {
		return nil, err
	}
	messageCount, err := svc.messages.CountUserMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	preferencesCount, err := svc.preferences.CountUserPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := svc.todos.GetTodoStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	overdue, err := svc.todos.GetOverdueTodos(ctx, userID)
	if err != nil {
		return nil, err
	}
	activeThreads, err := svc.threads.GetThreadsByStatus(ctx, userID, model.ThreadActive)
	if err != nil {
		return nil, err
	}

	perTable := map[string]int{
		"todos":            todoCount,
		"threads":          threadCount,
		"messages":         messageCount,
		"user_preferences": preferencesCount,
	}
	total := 0
	for _, count := range perTable {
		total += count
	}

	return &model.DashboardSummary{
		PerTable:     perTable,
		TotalRecords: total,
		Todos: model.DashboardTodoCounts{
			Total:        stats.Total,
			Active:       stats.Active,
			Completed:    stats.Completed,
			HighPriority: stats.HighPriority,
			Overdue:      len(overdue),
		},
		Threads: model.DashboardThreadCounts{
			Active: len(activeThreads),
		},
	}, nil
}

// Recent returns the user's most recently updated todos projected to the
// activity-table shape. The source listing is ordered by creation time, so it
// is re-sorted here; update order and creation order can differ.
func (svc *DashboardService) Recent(ctx context.Context, userID string, limit int) ([]model.RecentTodo, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	todos, err := svc.todos.GetUserTodos(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].UpdatedAt.After(todos[j].UpdatedAt)
	})
	if len(todos) > limit {
		todos = todos[:limit]
	}

	recent := make([]model.RecentTodo, len(todos))
	for i, todo := range todos {
		status := "Active"
		if todo.Completed {
			status = "Completed"
		}
		recent[i] = model.RecentTodo{
			ID:        todo.TodoID,
			Name:      todo.Title,
			Status:    status,
			Priority:  todo.Priority,
			UpdatedAt: todo.UpdatedAt,
		}
	}
	return recent, nil
}
