package agent

import (
	"context"
	"fmt"

	"main/apperrors"
	"main/model"
	"main/usecase"
)

// Dispatcher executes assistant tool calls against the todo service.
type Dispatcher struct {
	todos *usecase.TodosService
}

func NewDispatcher(todos *usecase.TodosService) *Dispatcher {
	return &Dispatcher{todos: todos}
}

// Dispatch runs one tool call. The type switch is exhaustive over the Tool
// set; an unknown implementation is a programming error.
func (d *Dispatcher) Dispatch(ctx context.Context, tool Tool) (interface{}, error) {
	switch t := tool.(type) {
	case ListTodos:
		if t.Completed != nil {
			return d.todos.GetTodosByCompletion(ctx, t.UserID, *t.Completed)
		}
		return d.todos.GetUserTodos(ctx, t.UserID)

	case CreateTodo:
		priority := model.Priority(t.Priority)
		if t.Priority == "" {
			priority = model.PriorityMedium
		}
		dueDate, err := ParseDueDate(t.DueDate)
		if err != nil {
			return nil, apperrors.InvalidInput("due_date", "must be an ISO 8601 timestamp")
		}
		return d.todos.CreateTodo(ctx, t.UserID, usecase.CreateTodoInput{
			Title:       t.Title,
			Description: t.Description,
			Priority:    priority,
			DueDate:     dueDate,
		})

	case UpdateTodo:
		patch := &model.TodoPatch{
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
		}
		if t.Priority != nil {
			priority := model.Priority(*t.Priority)
			patch.Priority = &priority
		}
		dueDate, err := ParseDueDate(t.DueDate)
		if err != nil {
			return nil, apperrors.InvalidInput("due_date", "must be an ISO 8601 timestamp")
		}
		patch.DueDate = dueDate
		return d.todos.UpdateTodo(ctx, t.TodoID, t.UserID, patch)

	case DeleteTodo:
		if err := d.todos.DeleteTodo(ctx, t.TodoID, t.UserID); err != nil {
			return nil, err
		}
		return map[string]string{"deleted": t.TodoID}, nil

	case GetTodoStats:
		return d.todos.GetTodoStats(ctx, t.UserID)

	default:
		return nil, fmt.Errorf("unknown agent tool %q", tool.toolName())
	}
}
