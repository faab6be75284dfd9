package handler

import (
	"strconv"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *usecase.DashboardService
}

func NewDashboardHandler(service *usecase.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, summary)
}

func (h *DashboardHandler) GetRecent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultRecentLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		utils.BadRequest(c, "Invalid limit parameter, must be positive")
		return
	}

	recent, err := h.service.Recent(c.Request.Context(), userID.(string), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, recent)
}
