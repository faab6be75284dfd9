package handler

import (
	"main/agent"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// AgentHandler exposes the assistant tool bridge over internal routes. These
// sit behind the service-token middleware; the user id comes from the request
// body, not from a session.
type AgentHandler struct {
	dispatcher *agent.Dispatcher
}

func NewAgentHandler(dispatcher *agent.Dispatcher) *AgentHandler {
	return &AgentHandler{dispatcher: dispatcher}
}

func (h *AgentHandler) ListTodos(c *gin.Context) {
	var req struct {
		UserID    string `json:"user_id" binding:"required"`
		Completed *bool  `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.dispatch(c, agent.ListTodos{UserID: req.UserID, Completed: req.Completed})
}

func (h *AgentHandler) CreateTodo(c *gin.Context) {
	var req struct {
		UserID      string  `json:"user_id" binding:"required"`
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Priority    string  `json:"priority"`
		DueDate     string  `json:"due_date"` // ISO 8601
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.dispatch(c, agent.CreateTodo{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
}

func (h *AgentHandler) UpdateTodo(c *gin.Context) {
	var req struct {
		UserID      string  `json:"user_id" binding:"required"`
		TodoID      string  `json:"todo_id" binding:"required"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
		Priority    *string `json:"priority"`
		DueDate     string  `json:"due_date"` // ISO 8601
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.dispatch(c, agent.UpdateTodo{
		UserID:      req.UserID,
		TodoID:      req.TodoID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
}

func (h *AgentHandler) DeleteTodo(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		TodoID string `json:"todo_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.dispatch(c, agent.DeleteTodo{UserID: req.UserID, TodoID: req.TodoID})
}

func (h *AgentHandler) GetTodoStats(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.dispatch(c, agent.GetTodoStats{UserID: req.UserID})
}

func (h *AgentHandler) dispatch(c *gin.Context, tool agent.Tool) {
	result, err := h.dispatcher.Dispatch(c.Request.Context(), tool)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}
