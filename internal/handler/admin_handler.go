package handler

import (
	"net/http"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, users)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req dto.UpdateUserRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.service.UpdateUserRole(c.Request.Context(), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actorID, userID); err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "user deleted"})
}
