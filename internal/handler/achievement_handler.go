package handler

import (
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	service service.AchievementService
}

func NewAchievementHandler(service service.AchievementService) *AchievementHandler {
	return &AchievementHandler{service: service}
}

// List returns the visible catalog annotated with the caller's unlock state.
func (h *AchievementHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	achievements, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, achievements)
}

// Check runs an evaluator pass for the caller and returns what it unlocked
// plus live progress on everything still locked.
func (h *AchievementHandler) Check(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.CheckAndUnlock(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, result)
}

// Seed materializes the compiled-in catalog. Admin only; safe to call again.
func (h *AchievementHandler) Seed(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.service.SeedCatalog(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, gin.H{
		"created": len(created),
		"achievements": created,
	})
}
