package handler

import (
	"net/http"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CampaignHandler struct {
	service service.CampaignService
}

func NewCampaignHandler(service service.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

func (h *CampaignHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	campaign, err := h.service.CreateCampaign(c.Request.Context(), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, campaign)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	var req dto.UpdateCampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	campaign, err := h.service.UpdateCampaign(c.Request.Context(), campaignID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, campaign)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	if err := h.service.DeleteCampaign(c.Request.Context(), campaignID); err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "campaign deleted"})
}

func (h *CampaignHandler) List(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	campaigns, err := h.service.ListCampaigns(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, campaigns)
}

func (h *CampaignHandler) GetBySlug(c *gin.Context) {
	campaign, err := h.service.GetCampaignBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, campaign)
}

func (h *CampaignHandler) SubmitProof(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req dto.SubmitProofInput
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	proof, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof file is required"})
		return
	}

	submission, err := h.service.SubmitProof(c.Request.Context(), userID, taskID, req.Note, proof)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, submission)
}

func (h *CampaignHandler) MySubmissions(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	submissions, err := h.service.ListMySubmissions(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, submissions)
}

func (h *CampaignHandler) PendingSubmissions(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	submissions, err := h.service.ListPendingSubmissions(c.Request.Context(), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, submissions)
}

func (h *CampaignHandler) ReviewSubmission(c *gin.Context) {
	reviewerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	var req dto.ReviewSubmissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	submission, err := h.service.ReviewSubmission(c.Request.Context(), reviewerID, submissionID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, submission)
}
