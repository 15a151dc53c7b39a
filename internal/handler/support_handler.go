package handler

import (
	"net/http"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SupportHandler struct {
	service service.SupportService
}

func NewSupportHandler(service service.SupportService) *SupportHandler {
	return &SupportHandler{service: service}
}

func (h *SupportHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ticket, err := h.service.CreateTicket(c.Request.Context(), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, ticket)
}

func (h *SupportHandler) Get(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, err := h.service.GetTicket(c.Request.Context(), userID, c.GetBool("is_admin"), ticketID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, ticket)
}

func (h *SupportHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tickets, err := h.service.ListMyTickets(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, tickets)
}

func (h *SupportHandler) ListAll(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	tickets, err := h.service.ListAllTickets(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, tickets)
}

func (h *SupportHandler) Reply(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	var req dto.ReplyTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	reply, err := h.service.Reply(c.Request.Context(), userID, c.GetBool("is_admin"), ticketID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, reply)
}

func (h *SupportHandler) Close(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, err := h.service.CloseTicket(c.Request.Context(), ticketID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, ticket)
}
