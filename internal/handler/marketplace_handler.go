package handler

import (
	"net/http"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MarketplaceHandler struct {
	service service.MarketplaceService
}

func NewMarketplaceHandler(service service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{service: service}
}

func (h *MarketplaceHandler) CreateListing(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateListingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	listing, err := h.service.CreateListing(c.Request.Context(), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, listing)
}

func (h *MarketplaceHandler) GetListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	listing, err := h.service.GetListing(c.Request.Context(), listingID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, listing)
}

func (h *MarketplaceHandler) ListListings(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	listings, err := h.service.ListListings(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, listings)
}

func (h *MarketplaceHandler) UpdateListing(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	var req dto.UpdateListingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	listing, err := h.service.UpdateListing(c.Request.Context(), userID, listingID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, listing)
}

func (h *MarketplaceHandler) MakeOffer(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	var req dto.CreateOfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	offer, err := h.service.MakeOffer(c.Request.Context(), userID, listingID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, offer)
}

func (h *MarketplaceHandler) ListOffers(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	offers, err := h.service.ListOffers(c.Request.Context(), userID, listingID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, offers)
}

func (h *MarketplaceHandler) AcceptOffer(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
		return
	}

	offer, err := h.service.AcceptOffer(c.Request.Context(), userID, offerID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, offer)
}

func (h *MarketplaceHandler) CreateReview(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	var req dto.CreateReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), userID, listingID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, review)
}

func (h *MarketplaceHandler) ListReviews(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), listingID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, reviews)
}
