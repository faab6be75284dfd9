package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"main/handler"
	"main/middleware"
	"main/model"
	"main/services"
	"main/testutil"
	"main/usecase"
	"main/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitValidator()
	os.Exit(m.Run())
}

// allowLimiter admits everything; denyLimiter rejects everything with a fixed
// wait. They stand in for the Redis-backed limiter.
type allowLimiter struct{}

func (allowLimiter) Limit(context.Context, services.Action, string) (services.Result, error) {
	return services.Result{OK: true}, nil
}

type denyLimiter struct{ wait time.Duration }

func (l denyLimiter) Limit(context.Context, services.Action, string) (services.Result, error) {
	return services.Result{OK: false, RetryAfter: l.wait}, nil
}

// asUser plays the role of AuthMiddleware for a fixed caller.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func newTodosRouter(limiter middleware.Limiter, userID string) (*gin.Engine, *usecase.TodosService) {
	gin.SetMode(gin.TestMode)
	service := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	h := handler.NewTodosHandler(service)

	router := gin.New()
	group := router.Group("/api/todos", asUser(userID))
	group.GET("", h.GetUserTodos)
	group.POST("", middleware.RateLimit(limiter, services.ActionCreateTodo), h.CreateTodo)
	group.PATCH("/:id", middleware.RateLimit(limiter, services.ActionUpdateTodo), h.UpdateTodo)
	group.POST("/:id/toggle", middleware.RateLimit(limiter, services.ActionUpdateTodo), h.ToggleTodo)
	group.DELETE("/:id", middleware.RateLimit(limiter, services.ActionDeleteTodo), h.DeleteTodo)
	return router, service
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTodoEndpoint(t *testing.T) {
	router, _ := newTodosRouter(allowLimiter{}, "user-1")

	w := doJSON(t, router, http.MethodPost, "/api/todos", gin.H{
		"title":    "buy milk",
		"priority": "high",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			Priority  string `json:"priority"`
			Completed bool   `json:"completed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID == "" || envelope.Data.Title != "buy milk" || envelope.Data.Priority != "high" {
		t.Errorf("created payload = %+v", envelope.Data)
	}
	if envelope.Data.Completed {
		t.Error("new todo reported completed")
	}
}

func TestCreateTodoEndpointValidation(t *testing.T) {
	router, _ := newTodosRouter(allowLimiter{}, "user-1")

	cases := []struct {
		name string
		body gin.H
	}{
		{"blank title", gin.H{"title": "   ", "priority": "low"}},
		{"bad priority", gin.H{"title": "ok", "priority": "urgent"}},
		{"missing priority", gin.H{"title": "ok"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/todos", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateTodoRejectsBadPriorityAtBinding(t *testing.T) {
	router, _ := newTodosRouter(allowLimiter{}, "user-1")

	// The binding rule fires before the service is consulted, so even a
	// nonexistent id gets a 400, not a 404
	w := doJSON(t, router, http.MethodPatch, "/api/todos/no-such-id", gin.H{"priority": "urgent"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 from the binding rule", w.Code)
	}
}

func TestUpdateTodoEndpointStatusCodes(t *testing.T) {
	router, service := newTodosRouter(allowLimiter{}, "user-1")

	todo, err := service.CreateTodo(context.Background(), "user-1", usecase.CreateTodoInput{
		Title: "mine", Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("seed todo: %v", err)
	}

	w := doJSON(t, router, http.MethodPatch, "/api/todos/"+todo.TodoID, gin.H{"title": "renamed"})
	if w.Code != http.StatusOK {
		t.Errorf("owner update status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPatch, "/api/todos/no-such-id", gin.H{"title": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing todo status = %d, want 404", w.Code)
	}
}

func TestOwnershipReturnsForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := usecase.NewTodosService(testutil.NewMemoryTodoStore())
	h := handler.NewTodosHandler(service)

	router := gin.New()
	router.PATCH("/api/todos/:id", asUser("intruder"), h.UpdateTodo)

	todo, err := service.CreateTodo(context.Background(), "owner", usecase.CreateTodoInput{
		Title: "private", Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("seed todo: %v", err)
	}

	w := doJSON(t, router, http.MethodPatch, "/api/todos/"+todo.TodoID, gin.H{"title": "stolen"})
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403, not a disguised 404: %s", w.Code, w.Body.String())
	}
}

func TestRateLimitedCreateReturns429(t *testing.T) {
	router, _ := newTodosRouter(denyLimiter{wait: 1500 * time.Millisecond}, "user-1")

	w := doJSON(t, router, http.MethodPost, "/api/todos", gin.H{"title": "late", "priority": "low"})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data struct {
			RetryAfterMS int64 `json:"retry_after_ms"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RetryAfterMS != 1500 {
		t.Errorf("retry_after_ms = %d, want 1500", envelope.Data.RetryAfterMS)
	}
}

func TestToggleSharesUpdateBudget(t *testing.T) {
	// Toggle goes through the same update bucket, so a denying limiter on
	// update must also block toggles.
	router, service := newTodosRouter(denyLimiter{wait: time.Second}, "user-1")

	todo, err := service.CreateTodo(context.Background(), "user-1", usecase.CreateTodoInput{
		Title: "flip", Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("seed todo: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/todos/%s/toggle", todo.TodoID), nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

func TestListTodosEndpoint(t *testing.T) {
	router, service := newTodosRouter(allowLimiter{}, "user-1")
	ctx := context.Background()

	service.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: "a", Priority: model.PriorityLow})
	service.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: "b", Priority: model.PriorityHigh})
	service.CreateTodo(ctx, "other", usecase.CreateTodoInput{Title: "not mine", Priority: model.PriorityLow})

	w := doJSON(t, router, http.MethodGet, "/api/todos", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Errorf("listed %d todos, want only the caller's 2", len(envelope.Data))
	}
}

func TestDeleteTodoEndpointIdempotent(t *testing.T) {
	router, service := newTodosRouter(allowLimiter{}, "user-1")

	todo, err := service.CreateTodo(context.Background(), "user-1", usecase.CreateTodoInput{
		Title: "temp", Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("seed todo: %v", err)
	}

	if w := doJSON(t, router, http.MethodDelete, "/api/todos/"+todo.TodoID, nil); w.Code != http.StatusOK {
		t.Fatalf("first delete status = %d, want 200", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/api/todos/"+todo.TodoID, nil); w.Code != http.StatusOK {
		t.Errorf("second delete status = %d, want 200, delete is idempotent", w.Code)
	}
}
