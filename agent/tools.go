// Package agent is the tool bridge the AI assistant calls instead of the
// client-facing endpoints. Callers are trusted: the user id arrives as an
// explicit argument, not from a session.
package agent

import "time"

// Tool is the closed set of actions the assistant may invoke. Adding a tool
// means adding a struct here and a case to Dispatcher.Dispatch; the compiler
// flags a dispatcher that misses one.
type Tool interface {
	toolName() string
}

// ListTodos returns the user's todos, optionally filtered by completion.
type ListTodos struct {
	UserID    string
	Completed *bool
}

// CreateTodo creates a todo on the user's behalf. Priority defaults to
// medium; DueDate is an ISO 8601 string when present.
type CreateTodo struct {
	UserID      string
	Title       string
	Description *string
	Priority    string
	DueDate     string
}

// UpdateTodo patches an owned todo. DueDate is an ISO 8601 string when
// present.
type UpdateTodo struct {
	UserID      string
	TodoID      string
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     string
}

// DeleteTodo removes an owned todo.
type DeleteTodo struct {
	UserID string
	TodoID string
}

// GetTodoStats returns the user's todo counts.
type GetTodoStats struct {
	UserID string
}

func (ListTodos) toolName() string    { return "list_todos" }
func (CreateTodo) toolName() string   { return "create_todo" }
func (UpdateTodo) toolName() string   { return "update_todo" }
func (DeleteTodo) toolName() string   { return "delete_todo" }
func (GetTodoStats) toolName() string { return "get_todo_stats" }

// ParseDueDate parses the assistant-supplied ISO 8601 due date.
func ParseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
