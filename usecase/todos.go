package usecase

import (
	"context"
	"strings"
	"time"

	"main/apperrors"
	"main/model"
	"main/utils"

	"github.com/google/uuid"
)

// TodoStore is the data-access contract the todo service depends on.
// *repository.TodosRepo satisfies it.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetTodoByID(ctx context.Context, todoID string) (*model.Todo, error)
	GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error)
	GetTodosByCompletion(ctx context.Context, userID string, completed bool) ([]*model.Todo, error)
	GetTodosByPriority(ctx context.Context, userID string, priority model.Priority) ([]*model.Todo, error)
	GetOverdueTodos(ctx context.Context, userID string) ([]*model.Todo, error)
	UpdateTodo(ctx context.Context, todoID string, patch *model.TodoPatch) error
	DeleteTodo(ctx context.Context, todoID string) error
	DeleteCompletedTodos(ctx context.Context, userID string) (int, error)
	GetTodoStats(ctx context.Context, userID string) (*model.TodoStats, error)
	CountUserTodos(ctx context.Context, userID string) (int, error)
}

type TodosService struct {
	store TodoStore
}

func NewTodosService(store TodoStore) *TodosService {
	return &TodosService{store: store}
}

// CreateTodoInput carries the caller-supplied fields for a new todo.
type CreateTodoInput struct {
	Title       string
	Description *string
	Priority    model.Priority
	DueDate     *time.Time
}

// CreateTodo validates the input and inserts a new todo owned by userID.
func (svc *TodosService) CreateTodo(ctx context.Context, userID string, input CreateTodoInput) (*model.Todo, error) {
	if !utils.IsValidTitle(input.Title) {
		return nil, apperrors.InvalidInput("title", "must be between 1 and 200 characters")
	}
	if !utils.IsValidDescription(input.Description) {
		return nil, apperrors.InvalidInput("description", "must be at most 2000 characters")
	}
	if !utils.IsValidPriority(string(input.Priority)) {
		return nil, apperrors.InvalidInput("priority", "must be low, medium or high")
	}
	if !utils.IsValidDueDate(input.DueDate) {
		return nil, apperrors.InvalidInput("due_date", "must be in the future")
	}

	todo := &model.Todo{
		TodoID:   uuid.New().String(),
		UserID:   userID,
		Title:    strings.TrimSpace(input.Title),
		Priority: input.Priority,
		DueDate:  input.DueDate,
	}
	if input.Description != nil {
		todo.Description = strings.TrimSpace(*input.Description)
	}

	if err := svc.store.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}
	utils.TrackTodoOperation("create")
	return todo, nil
}

func (svc *TodosService) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	return svc.store.GetUserTodos(ctx, userID)
}

func (svc *TodosService) GetTodosByCompletion(ctx context.Context, userID string, completed bool) ([]*model.Todo, error) {
	return svc.store.GetTodosByCompletion(ctx, userID, completed)
}

func (svc *TodosService) GetTodosByPriority(ctx context.Context, userID string, priority model.Priority) ([]*model.Todo, error) {
	if !utils.IsValidPriority(string(priority)) {
		return nil, apperrors.InvalidInput("priority", "must be low, medium or high")
	}
	return svc.store.GetTodosByPriority(ctx, userID, priority)
}

func (svc *TodosService) GetOverdueTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	return svc.store.GetOverdueTodos(ctx, userID)
}

func (svc *TodosService) GetTodoStats(ctx context.Context, userID string) (*model.TodoStats, error) {
	return svc.store.GetTodoStats(ctx, userID)
}

// UpdateTodo loads the todo, checks ownership against userID, validates the
// patch and applies it. Ownership failures surface as ErrForbidden, never as
// ErrNotFound.
func (svc *TodosService) UpdateTodo(ctx context.Context, todoID, userID string, patch *model.TodoPatch) (*model.Todo, error) {
	if _, err := svc.ownedTodo(ctx, todoID, userID); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return nil, apperrors.InvalidInput("patch", "must set at least one field")
	}
	if patch.Title != nil && !utils.IsValidTitle(*patch.Title) {
		return nil, apperrors.InvalidInput("title", "must be between 1 and 200 characters")
	}
	if !utils.IsValidDescription(patch.Description) {
		return nil, apperrors.InvalidInput("description", "must be at most 2000 characters")
	}
	if patch.Priority != nil && !utils.IsValidPriority(string(*patch.Priority)) {
		return nil, apperrors.InvalidInput("priority", "must be low, medium or high")
	}
	if !utils.IsValidDueDate(patch.DueDate) {
		return nil, apperrors.InvalidInput("due_date", "must be in the future")
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		patch.Description = &trimmed
	}

	if err := svc.store.UpdateTodo(ctx, todoID, patch); err != nil {
		return nil, err
	}
	utils.TrackTodoOperation("update")
	return svc.store.GetTodoByID(ctx, todoID)
}

// ToggleTodo flips the completion flag; toggling twice restores the original
// value.
func (svc *TodosService) ToggleTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	todo, err := svc.ownedTodo(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}

	flipped := !todo.Completed
	if err := svc.store.UpdateTodo(ctx, todoID, &model.TodoPatch{Completed: &flipped}); err != nil {
		return nil, err
	}
	utils.TrackTodoOperation("toggle")
	return svc.store.GetTodoByID(ctx, todoID)
}

// DeleteTodo removes one todo after an ownership check.
func (svc *TodosService) DeleteTodo(ctx context.Context, todoID, userID string) error {
	if _, err := svc.ownedTodo(ctx, todoID, userID); err != nil {
		return err
	}
	if err := svc.store.DeleteTodo(ctx, todoID); err != nil {
		return err
	}
	utils.TrackTodoOperation("delete")
	return nil
}

// ClearCompleted removes every completed todo for the user and returns how
// many were removed. A second call in a row removes 0.
func (svc *TodosService) ClearCompleted(ctx context.Context, userID string) (int, error) {
	count, err := svc.store.DeleteCompletedTodos(ctx, userID)
	if err != nil {
		return 0, err
	}
	utils.TrackTodoOperation("clear_completed")
	return count, nil
}

func (svc *TodosService) ownedTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	todo, err := svc.store.GetTodoByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return todo, nil
}
