package handler

import (
	"net/http"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.RequestOTP(c.Request.Context(), req); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, auth)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, auth)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	user, err := h.service.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, user)
}
