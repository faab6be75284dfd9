package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ThreadsHandler struct {
	service *usecase.ThreadsService
}

func NewThreadsHandler(service *usecase.ThreadsService) *ThreadsHandler {
	return &ThreadsHandler{service: service}
}

func (h *ThreadsHandler) CreateThread(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	thread, err := h.service.CreateThread(c.Request.Context(), userID.(string), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, dto.ToThreadResponse(thread))
}

func (h *ThreadsHandler) GetUserThreads(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	threads, err := h.service.GetUserThreads(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToThreadResponses(threads))
}

func (h *ThreadsHandler) ArchiveThread(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	threadID := c.Param("id")
	if threadID == "" {
		utils.BadRequest(c, "Missing thread ID")
		return
	}

	thread, err := h.service.ArchiveThread(c.Request.Context(), threadID, userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToThreadResponse(thread))
}

func (h *ThreadsHandler) SendMessage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	threadID := c.Param("id")
	if threadID == "" {
		utils.BadRequest(c, "Missing thread ID")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), threadID, userID.(string), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, dto.ToMessageResponse(message))
}

func (h *ThreadsHandler) GetThreadMessages(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	threadID := c.Param("id")
	if threadID == "" {
		utils.BadRequest(c, "Missing thread ID")
		return
	}

	messages, err := h.service.GetThreadMessages(c.Request.Context(), threadID, userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToMessageResponses(messages))
}
