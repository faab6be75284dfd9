package handler

import (
	"strconv"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TodosHandler struct {
	service *usecase.TodosService
}

func NewTodosHandler(service *usecase.TodosService) *TodosHandler {
	return &TodosHandler{service: service}
}

func (h *TodosHandler) CreateTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	todo, err := h.service.CreateTodo(c.Request.Context(), userID.(string), usecase.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, dto.ToTodoResponse(todo))
}

func (h *TodosHandler) GetUserTodos(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todos, err := h.service.GetUserTodos(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToTodoResponses(todos))
}

func (h *TodosHandler) GetTodosByStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	completed, err := strconv.ParseBool(c.Query("completed"))
	if err != nil {
		utils.BadRequest(c, "Invalid completed parameter, must be true or false")
		return
	}

	todos, err := h.service.GetTodosByCompletion(c.Request.Context(), userID.(string), completed)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToTodoResponses(todos))
}

func (h *TodosHandler) GetTodosByPriority(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	priority := model.Priority(c.Query("priority"))
	todos, err := h.service.GetTodosByPriority(c.Request.Context(), userID.(string), priority)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToTodoResponses(todos))
}

func (h *TodosHandler) GetOverdueTodos(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todos, err := h.service.GetOverdueTodos(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToTodoResponses(todos))
}

func (h *TodosHandler) GetTodoStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	stats, err := h.service.GetTodoStats(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, stats)
}

func (h *TodosHandler) UpdateTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todoID := c.Param("id")
	if todoID == "" {
		utils.BadRequest(c, "Missing todo ID")
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.service.UpdateTodo(c.Request.Context(), todoID, userID.(string), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToTodoResponse(todo))
}

func (h *TodosHandler) ToggleTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todoID := c.Param("id")
	if todoID == "" {
		utils.BadRequest(c, "Missing todo ID")
		return
	}

	todo, err := h.service.ToggleTodo(c.Request.Context(), todoID, userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToTodoResponse(todo))
}

func (h *TodosHandler) DeleteTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todoID := c.Param("id")
	if todoID == "" {
		utils.BadRequest(c, "Missing todo ID")
		return
	}

	if err := h.service.DeleteTodo(c.Request.Context(), todoID, userID.(string)); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Todo deleted successfully"})
}

func (h *TodosHandler) ClearCompleted(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	count, err := h.service.ClearCompleted(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"deleted_count": count})
}
