package handler

import (
	"strconv"

	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.service.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, entries)
}

func (h *LeaderboardHandler) MyRank(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	entry, err := h.service.GetRank(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, entry)
}
