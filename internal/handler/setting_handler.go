package handler

import (
	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	service service.SettingService
}

func NewSettingHandler(service service.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.service.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, setting)
}

func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.service.ListSettings(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, settings)
}

func (h *SettingHandler) Put(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpsertSettingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	setting, err := h.service.PutSetting(c.Request.Context(), adminID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, setting)
}

func (h *SettingHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSetting(c.Request.Context(), c.Param("key")); err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "setting deleted"})
}
