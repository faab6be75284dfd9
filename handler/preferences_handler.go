package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	service *usecase.PreferencesService
}

func NewPreferencesHandler(service *usecase.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	prefs, err := h.service.GetPreferences(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToPreferencesResponse(prefs))
}

func (h *PreferencesHandler) InitializePreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	prefs, err := h.service.Initialize(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToPreferencesResponse(prefs))
}

func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), userID.(string), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToPreferencesResponse(prefs))
}
