package dto

import (
	"time"

	"main/model"
)

type TodoResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Completed    bool           `json:"completed"`
	Priority     model.Priority `json:"priority"`
	DueDate      *time.Time     `json:"due_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	TimeUntilDue string         `json:"time_until_due,omitempty"` // computed
}

// ToTodoResponse converts a todo record to its response shape.
func ToTodoResponse(todo *model.Todo) TodoResponse {
	response := TodoResponse{
		ID:          todo.TodoID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    todo.Priority,
		DueDate:     todo.DueDate,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}

	if todo.DueDate != nil && !todo.Completed {
		if todo.DueDate.Before(time.Now()) {
			response.TimeUntilDue = "Overdue"
		} else {
			response.TimeUntilDue = time.Until(*todo.DueDate).Round(time.Hour).String()
		}
	}

	return response
}

func ToTodoResponses(todos []*model.Todo) []TodoResponse {
	responses := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		responses[i] = ToTodoResponse(todo)
	}
	return responses
}

// CreateTodoRequest is the client payload for todos.create.
type CreateTodoRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority" binding:"required,priority"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTodoRequest is the client payload for todos.update. Absent fields are
// left untouched.
type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority" binding:"omitempty,priority"`
	DueDate     *time.Time `json:"due_date"`
}

// ToPatch converts the request to the partial-update shape.
func (r *UpdateTodoRequest) ToPatch() *model.TodoPatch {
	patch := &model.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		priority := model.Priority(*r.Priority)
		patch.Priority = &priority
	}
	return patch
}
