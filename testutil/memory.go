// Package testutil provides in-memory store implementations for tests. They
// mirror the Mongo repositories' contracts without a database.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"main/apperrors"
	"main/model"
)

// MemoryTodoStore implements usecase.TodoStore over a map.
type MemoryTodoStore struct {
	mu    sync.Mutex
	todos map[string]*model.Todo
}

func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{todos: make(map[string]*model.Todo)}
}

func (s *MemoryTodoStore) CreateTodo(_ context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	todo.Completed = false
	todo.CreatedAt = now
	todo.UpdatedAt = now

	stored := *todo
	s.todos[todo.TodoID] = &stored
	return nil
}

func (s *MemoryTodoStore) GetTodoByID(_ context.Context, todoID string) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[todoID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *todo
	return &copied, nil
}

func (s *MemoryTodoStore) GetUserTodos(_ context.Context, userID string) ([]*model.Todo, error) {
	return s.filter(func(t *model.Todo) bool { return t.UserID == userID }), nil
}

func (s *MemoryTodoStore) GetTodosByCompletion(_ context.Context, userID string, completed bool) ([]*model.Todo, error) {
	return s.filter(func(t *model.Todo) bool {
		return t.UserID == userID && t.Completed == completed
	}), nil
}

func (s *MemoryTodoStore) GetTodosByPriority(_ context.Context, userID string, priority model.Priority) ([]*model.Todo, error) {
	return s.filter(func(t *model.Todo) bool {
		return t.UserID == userID && t.Priority == priority
	}), nil
}

func (s *MemoryTodoStore) GetOverdueTodos(_ context.Context, userID string) ([]*model.Todo, error) {
	now := time.Now()
	return s.filter(func(t *model.Todo) bool {
		return t.UserID == userID && !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
	}), nil
}

func (s *MemoryTodoStore) UpdateTodo(_ context.Context, todoID string, patch *model.TodoPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[todoID]
	if !ok {
		return apperrors.ErrNotFound
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		todo.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		todo.DueDate = patch.DueDate
	}
	todo.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryTodoStore) DeleteTodo(_ context.Context, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.todos, todoID)
	return nil
}

func (s *MemoryTodoStore) DeleteCompletedTodos(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, todo := range s.todos {
		if todo.UserID == userID && todo.Completed {
			delete(s.todos, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryTodoStore) GetTodoStats(ctx context.Context, userID string) (*model.TodoStats, error) {
	todos, _ := s.GetUserTodos(ctx, userID)

	stats := &model.TodoStats{Total: len(todos)}
	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
			continue
		}
		if todo.Priority == model.PriorityHigh {
			stats.HighPriority++
		}
	}
	stats.Active = stats.Total - stats.Completed
	return stats, nil
}

func (s *MemoryTodoStore) CountUserTodos(ctx context.Context, userID string) (int, error) {
	todos, _ := s.GetUserTodos(ctx, userID)
	return len(todos), nil
}

func (s *MemoryTodoStore) filter(keep func(*model.Todo) bool) []*model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Todo
	for _, todo := range s.todos {
		if keep(todo) {
			copied := *todo
			out = append(out, &copied)
		}
	}
	// Newest created first, matching the Mongo sort
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MemoryThreadStore implements usecase.ThreadStore and the dashboard's
// ThreadCounter.
type MemoryThreadStore struct {
	mu      sync.Mutex
	threads map[string]*model.Thread
}

func NewMemoryThreadStore() *MemoryThreadStore {
	return &MemoryThreadStore{threads: make(map[string]*model.Thread)}
}

func (s *MemoryThreadStore) CreateThread(_ context.Context, thread *model.Thread) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	thread.Status = model.ThreadActive
	thread.CreatedAt = now
	thread.UpdatedAt = now

	stored := *thread
	s.threads[thread.ThreadID] = &stored
	return nil
}

func (s *MemoryThreadStore) GetThreadByID(_ context.Context, threadID string) (*model.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[threadID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *thread
	return &copied, nil
}

func (s *MemoryThreadStore) GetUserThreads(_ context.Context, userID string) ([]*model.Thread, error) {
	return s.filter(func(t *model.Thread) bool { return t.UserID == userID }), nil
}

func (s *MemoryThreadStore) GetThreadsByStatus(_ context.Context, userID string, status model.ThreadStatus) ([]*model.Thread, error) {
	return s.filter(func(t *model.Thread) bool {
		return t.UserID == userID && t.Status == status
	}), nil
}

func (s *MemoryThreadStore) SetThreadStatus(_ context.Context, threadID string, status model.ThreadStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[threadID]
	if !ok {
		return apperrors.ErrNotFound
	}
	thread.Status = status
	thread.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryThreadStore) TouchThread(_ context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[threadID]
	if !ok {
		return apperrors.ErrNotFound
	}
	thread.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryThreadStore) CountUserThreads(ctx context.Context, userID string) (int, error) {
	threads, _ := s.GetUserThreads(ctx, userID)
	return len(threads), nil
}

func (s *MemoryThreadStore) filter(keep func(*model.Thread) bool) []*model.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Thread
	for _, thread := range s.threads {
		if keep(thread) {
			copied := *thread
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MemoryMessageStore implements usecase.MessageStore and the dashboard's
// MessageCounter.
type MemoryMessageStore struct {
	mu       sync.Mutex
	messages []*model.Message
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{}
}

func (s *MemoryMessageStore) CreateMessage(_ context.Context, message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.CreatedAt = time.Now()
	stored := *message
	s.messages = append(s.messages, &stored)
	return nil
}

func (s *MemoryMessageStore) GetThreadMessages(_ context.Context, threadID string) ([]*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Message
	for _, message := range s.messages {
		if message.ThreadID == threadID {
			copied := *message
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *MemoryMessageStore) CountUserMessages(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, message := range s.messages {
		if message.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MemoryPreferencesStore implements usecase.PreferencesStore and the
// dashboard's PreferencesCounter.
type MemoryPreferencesStore struct {
	mu    sync.Mutex
	prefs map[string]*model.Preferences // keyed by user id
}

func NewMemoryPreferencesStore() *MemoryPreferencesStore {
	return &MemoryPreferencesStore{prefs: make(map[string]*model.Preferences)}
}

func (s *MemoryPreferencesStore) CreatePreferences(_ context.Context, prefs *model.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	prefs.CreatedAt = now
	prefs.UpdatedAt = now

	stored := *prefs
	s.prefs[prefs.UserID] = &stored
	return nil
}

func (s *MemoryPreferencesStore) GetUserPreferences(_ context.Context, userID string) (*model.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, ok := s.prefs[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *prefs
	return &copied, nil
}

func (s *MemoryPreferencesStore) UpdatePreferences(_ context.Context, userID string, patch *model.PreferencesPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, ok := s.prefs[userID]
	if !ok {
		return apperrors.ErrNotFound
	}

	if patch.Theme != nil {
		prefs.Theme = *patch.Theme
	}
	if patch.EmailNotifications != nil {
		prefs.EmailNotifications = *patch.EmailNotifications
	}
	if patch.PushNotifications != nil {
		prefs.PushNotifications = *patch.PushNotifications
	}
	if patch.DefaultPriority != nil {
		prefs.DefaultPriority = *patch.DefaultPriority
	}
	prefs.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryPreferencesStore) CountUserPreferences(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prefs[userID]; ok {
		return 1, nil
	}
	return 0, nil
}
