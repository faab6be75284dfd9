package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"main/apperrors"
	"main/model"
	"main/testutil"
	"main/usecase"
)

func TestCreateTodo(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{
		Title:    "Buy milk",
		Priority: model.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	if todo.Completed {
		t.Error("new todo must not be completed")
	}
	if todo.UserID != "user-1" {
		t.Errorf("owner = %q, want user-1", todo.UserID)
	}
	if !todo.CreatedAt.Equal(todo.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v at creation", todo.CreatedAt, todo.UpdatedAt)
	}
	if todo.TodoID == "" {
		t.Error("new todo must get an id")
	}
}

func TestCreateTodoValidation(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	longDescription := strings.Repeat("a", 2001)

	tests := []struct {
		name  string
		input usecase.CreateTodoInput
	}{
		{"empty title", usecase.CreateTodoInput{Title: "   ", Priority: model.PriorityLow}},
		{"title too long", usecase.CreateTodoInput{Title: strings.Repeat("a", 201), Priority: model.PriorityLow}},
		{"description too long", usecase.CreateTodoInput{Title: "ok", Description: &longDescription, Priority: model.PriorityLow}},
		{"bad priority", usecase.CreateTodoInput{Title: "ok", Priority: "urgent"}},
		{"past due date", usecase.CreateTodoInput{Title: "ok", Priority: model.PriorityLow, DueDate: &past}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTodo(ctx, "user-1", tt.input)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateTodoTrimsTitle(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())

	todo, err := svc.CreateTodo(context.Background(), "user-1", usecase.CreateTodoInput{
		Title:    "  Buy milk  ",
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if todo.Title != "Buy milk" {
		t.Errorf("title = %q, want trimmed %q", todo.Title, "Buy milk")
	}
}

func TestToggleTodoTwiceRestoresCompletion(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{
		Title:    "flip me",
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	once, err := svc.ToggleTodo(ctx, todo.TodoID, "user-1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !once.Completed {
		t.Error("first toggle should complete the todo")
	}
	if once.UpdatedAt.Before(todo.UpdatedAt) {
		t.Error("toggle must not move updatedAt backwards")
	}

	twice, err := svc.ToggleTodo(ctx, todo.TodoID, "user-1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if twice.Completed != todo.Completed {
		t.Error("two toggles should restore the original completion value")
	}
	if twice.UpdatedAt.Before(once.UpdatedAt) {
		t.Error("toggle must not move updatedAt backwards")
	}
}

func TestUpdateTodoOwnership(t *testing.T) {
	store := testutil.NewMemoryTodoStore()
	svc := usecase.NewTodosService(store)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, "owner", usecase.CreateTodoInput{
		Title:    "private",
		Priority: model.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	newTitle := "hijacked"
	_, err = svc.UpdateTodo(ctx, todo.TodoID, "intruder", &model.TodoPatch{Title: &newTitle})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}

	// The record must be unchanged
	unchanged, err := store.GetTodoByID(ctx, todo.TodoID)
	if err != nil {
		t.Fatalf("GetTodoByID: %v", err)
	}
	if unchanged.Title != "private" {
		t.Errorf("title = %q, forbidden update must not alter the record", unchanged.Title)
	}

	if err := svc.DeleteTodo(ctx, todo.TodoID, "intruder"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("delete error = %v, want ErrForbidden", err)
	}
	if _, err := store.GetTodoByID(ctx, todo.TodoID); err != nil {
		t.Error("forbidden delete must not remove the record")
	}
}

func TestUpdateTodoRejectsEmptyPatch(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{
		Title:    "as is",
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	_, err = svc.UpdateTodo(ctx, todo.TodoID, "user-1", &model.TodoPatch{})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput for an empty patch", err)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())

	title := "anything"
	_, err := svc.UpdateTodo(context.Background(), "missing-id", "user-1", &model.TodoPatch{Title: &title})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateTodoPartialFields(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	ctx := context.Background()

	description := "the details"
	todo, err := svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{
		Title:       "original",
		Description: &description,
		Priority:    model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	priority := model.PriorityHigh
	updated, err := svc.UpdateTodo(ctx, todo.TodoID, "user-1", &model.TodoPatch{Priority: &priority})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}

	if updated.Priority != model.PriorityHigh {
		t.Errorf("priority = %q, want high", updated.Priority)
	}
	if updated.Title != "original" || updated.Description != "the details" {
		t.Error("unsupplied fields must be left untouched")
	}
	if updated.UserID != "user-1" || !updated.CreatedAt.Equal(todo.CreatedAt) {
		t.Error("owner and creation timestamp must never change")
	}
	if updated.UpdatedAt.Before(todo.UpdatedAt) {
		t.Error("update must refresh updatedAt")
	}
}

func TestClearCompleted(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	ctx := context.Background()

	var completedIDs []string
	for i := 0; i < 3; i++ {
		todo, _ := svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{
			Title:    "done",
			Priority: model.PriorityLow,
		})
		if _, err := svc.ToggleTodo(ctx, todo.TodoID, "user-1"); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		completedIDs = append(completedIDs, todo.TodoID)
	}
	active, _ := svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{
		Title:    "still open",
		Priority: model.PriorityLow,
	})
	other, _ := svc.CreateTodo(ctx, "user-2", usecase.CreateTodoInput{
		Title:    "someone else's",
		Priority: model.PriorityLow,
	})
	if _, err := svc.ToggleTodo(ctx, other.TodoID, "user-2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	count, err := svc.ClearCompleted(ctx, "user-1")
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if count != len(completedIDs) {
		t.Errorf("deleted count = %d, want %d", count, len(completedIDs))
	}

	remaining, _ := svc.GetUserTodos(ctx, "user-1")
	if len(remaining) != 1 || remaining[0].TodoID != active.TodoID {
		t.Error("clear completed must leave active todos untouched")
	}
	otherTodos, _ := svc.GetUserTodos(ctx, "user-2")
	if len(otherTodos) != 1 {
		t.Error("clear completed must not touch other users' todos")
	}

	// Second call in a row removes nothing
	count, err = svc.ClearCompleted(ctx, "user-1")
	if err != nil {
		t.Fatalf("second ClearCompleted: %v", err)
	}
	if count != 0 {
		t.Errorf("second clear deleted %d, want 0", count)
	}
}

func TestGetOverdueTodos(t *testing.T) {
	store := testutil.NewMemoryTodoStore()
	svc := usecase.NewTodosService(store)
	ctx := context.Background()

	// Seed directly so a past due date can exist in the store
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	seed := []*model.Todo{
		{TodoID: "overdue", UserID: "user-1", Title: "late", Priority: model.PriorityLow, DueDate: &past},
		{TodoID: "due-later", UserID: "user-1", Title: "on track", Priority: model.PriorityLow, DueDate: &future},
		{TodoID: "no-due", UserID: "user-1", Title: "whenever", Priority: model.PriorityLow},
		{TodoID: "done-late", UserID: "user-1", Title: "finished late", Priority: model.PriorityLow, DueDate: &past},
	}
	for _, todo := range seed {
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	completed := true
	if err := store.UpdateTodo(ctx, "done-late", &model.TodoPatch{Completed: &completed}); err != nil {
		t.Fatalf("seed complete: %v", err)
	}

	overdue, err := svc.GetOverdueTodos(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetOverdueTodos: %v", err)
	}
	if len(overdue) != 1 || overdue[0].TodoID != "overdue" {
		t.Fatalf("overdue = %v, want exactly the incomplete past-due todo", overdue)
	}
}

func TestGetTodoStats(t *testing.T) {
	svc := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	ctx := context.Background()

	svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: "a", Priority: model.PriorityHigh})
	done, _ := svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: "b", Priority: model.PriorityHigh})
	svc.ToggleTodo(ctx, done.TodoID, "user-1")
	svc.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: "c", Priority: model.PriorityLow})

	stats, err := svc.GetTodoStats(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetTodoStats: %v", err)
	}

	want := model.TodoStats{Total: 3, Completed: 1, Active: 2, HighPriority: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}
