package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"main/handler"
	"main/model"
	"main/testutil"
	"main/usecase"
)

func newDashboardRouter(userID string) (*gin.Engine, *usecase.TodosService) {
	gin.SetMode(gin.TestMode)
	todoStore := testutil.NewMemoryTodoStore()
	threadStore := testutil.NewMemoryThreadStore()
	messageStore := testutil.NewMemoryMessageStore()
	prefsStore := testutil.NewMemoryPreferencesStore()

	todos := usecase.NewTodosService(todoStore)
	dashboard := usecase.NewDashboardService(todoStore, threadStore, messageStore, prefsStore)
	h := handler.NewDashboardHandler(dashboard)

	router := gin.New()
	group := router.Group("/api/dashboard", asUser(userID))
	group.GET("/summary", h.GetSummary)
	group.GET("/recent", h.GetRecent)
	return router, todos
}

func TestDashboardSummaryEndpoint(t *testing.T) {
	router, todos := newDashboardRouter("user-1")
	ctx := context.Background()

	todos.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: "a", Priority: model.PriorityHigh})
	done, _ := todos.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: "b", Priority: model.PriorityLow})
	todos.ToggleTodo(ctx, done.TodoID, "user-1")

	w := doJSON(t, router, http.MethodGet, "/api/dashboard/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data struct {
			PerTable     map[string]int `json:"per_table"`
			TotalRecords int            `json:"total_records"`
			Todos        struct {
				Total     int `json:"total"`
				Completed int `json:"completed"`
			} `json:"todos"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PerTable["todos"] != 2 || envelope.Data.TotalRecords != 2 {
		t.Errorf("summary = %+v, want 2 todos and total 2", envelope.Data)
	}
	if envelope.Data.Todos.Completed != 1 {
		t.Errorf("completed = %d, want 1", envelope.Data.Todos.Completed)
	}
}

func TestDashboardRecentEndpoint(t *testing.T) {
	router, todos := newDashboardRouter("user-1")
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		todos.CreateTodo(ctx, "user-1", usecase.CreateTodoInput{Title: title, Priority: model.PriorityLow})
	}

	w := doJSON(t, router, http.MethodGet, "/api/dashboard/recent?limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("recent length = %d, want 2", len(envelope.Data))
	}
	if envelope.Data[0].Status != "Active" {
		t.Errorf("status label = %q, want Active", envelope.Data[0].Status)
	}
}

func TestDashboardRecentRejectsBadLimit(t *testing.T) {
	router, _ := newDashboardRouter("user-1")

	for _, query := range []string{"limit=0", "limit=-3", "limit=abc"} {
		w := doJSON(t, router, http.MethodGet, "/api/dashboard/recent?"+query, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, w.Code)
		}
	}
}
