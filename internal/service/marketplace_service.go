package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarketplaceService interface {
	CreateListing(ctx context.Context, userID uuid.UUID, input dto.CreateListingInput) (*model.Listing, error)
	GetListing(ctx context.Context, listingID uuid.UUID) (*model.Listing, error)
	ListListings(ctx context.Context, status string, page dto.Pagination) (*dto.PaginatedResponse, error)
	UpdateListing(ctx context.Context, userID uuid.UUID, listingID uuid.UUID, input dto.UpdateListingInput) (*model.Listing, error)

	MakeOffer(ctx context.Context, userID, listingID uuid.UUID, input dto.CreateOfferInput) (*model.Offer, error)
	ListOffers(ctx context.Context, userID, listingID uuid.UUID) ([]*model.Offer, error)
	AcceptOffer(ctx context.Context, userID, offerID uuid.UUID) (*model.Offer, error)

	CreateReview(ctx context.Context, userID, listingID uuid.UUID, input dto.CreateReviewInput) (*model.Review, error)
	ListReviews(ctx context.Context, listingID uuid.UUID) ([]*model.Review, error)
}

type marketplaceService struct {
	repo               repository.MarketplaceRepository
	achievementService AchievementService
	notifService       NotificationService
}

func NewMarketplaceService(
	repo repository.MarketplaceRepository,
	achievementService AchievementService,
	notifService NotificationService,
) MarketplaceService {
	return &marketplaceService{
		repo:               repo,
		achievementService: achievementService,
		notifService:       notifService,
	}
}

func (s *marketplaceService) CreateListing(ctx context.Context, userID uuid.UUID, input dto.CreateListingInput) (*model.Listing, error) {
	listing := &model.Listing{
		SellerID:    userID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Status:      model.ListingStatusOpen,
	}
	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return nil, err
	}

	s.achievementService.CheckAndUnlockAsync(userID)

	return listing, nil
}

func (s *marketplaceService) GetListing(ctx context.Context, listingID uuid.UUID) (*model.Listing, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *marketplaceService) ListListings(ctx context.Context, status string, page dto.Pagination) (*dto.PaginatedResponse, error) {
	listings, total, err := s.repo.FindListings(ctx, status, page.Offset(), page.PerPage())
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: listings, Total: total, Page: page.Page, Limit: page.PerPage()}, nil
}

func (s *marketplaceService) UpdateListing(ctx context.Context, userID uuid.UUID, listingID uuid.UUID, input dto.UpdateListingInput) (*model.Listing, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if listing.SellerID != userID {
		return nil, apperror.New(403, "you can only update your own listing", apperror.ErrForbidden)
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.Status != nil {
		listing.Status = *input.Status
	}

	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (s *marketplaceService) MakeOffer(ctx context.Context, userID, listingID uuid.UUID, input dto.CreateOfferInput) (*model.Offer, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "listing not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if listing.Status != model.ListingStatusOpen {
		return nil, apperror.New(400, "listing is closed", apperror.ErrBadRequest)
	}
	if listing.SellerID == userID {
		return nil, apperror.New(400, "you cannot make an offer on your own listing", apperror.ErrBadRequest)
	}

	offer := &model.Offer{
		ListingID: listingID,
		BuyerID:   userID,
		Amount:    input.Amount,
		Status:    model.OfferStatusPending,
	}
	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}

	notification := &model.Notification{
		UserID: listing.SellerID,
		Type:   model.NotificationTypeOffer,
		Title:  fmt.Sprintf("New offer on %q", listing.Title),
		Body:   fmt.Sprintf("Someone offered %d points.", input.Amount),
	}
	if err := s.notifService.CreateNotification(ctx, notification); err != nil {
		// Offer stands either way
		log.Printf("failed to notify seller %s: %v", listing.SellerID, err)
	}

	s.achievementService.CheckAndUnlockAsync(userID)

	return offer, nil
}

func (s *marketplaceService) ListOffers(ctx context.Context, userID, listingID uuid.UUID) ([]*model.Offer, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	// Offers are visible to the seller only
	if listing.SellerID != userID {
		return nil, apperror.New(403, "only the seller can see offers", apperror.ErrForbidden)
	}

	return s.repo.FindOffersByListing(ctx, listingID)
}

func (s *marketplaceService) AcceptOffer(ctx context.Context, userID, offerID uuid.UUID) (*model.Offer, error) {
	offer, err := s.repo.FindOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if offer.Listing.SellerID != userID {
		return nil, apperror.New(403, "only the seller can accept an offer", apperror.ErrForbidden)
	}
	if offer.Status != model.OfferStatusPending {
		return nil, apperror.New(400, "offer is no longer pending", apperror.ErrBadRequest)
	}

	offer.Status = model.OfferStatusAccepted
	if err := s.repo.UpdateOffer(ctx, offer); err != nil {
		return nil, err
	}

	listing := offer.Listing
	listing.Status = model.ListingStatusClosed
	if err := s.repo.UpdateListing(ctx, &listing); err != nil {
		return nil, err
	}

	return offer, nil
}

func (s *marketplaceService) CreateReview(ctx context.Context, userID, listingID uuid.UUID, input dto.CreateReviewInput) (*model.Review, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "listing not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if listing.SellerID == userID {
		return nil, apperror.New(400, "you cannot review your own listing", apperror.ErrBadRequest)
	}

	review := &model.Review{
		ListingID:  listingID,
		ReviewerID: userID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(409, "you already reviewed this listing", apperror.ErrConflict)
		}
		return nil, err
	}

	s.achievementService.CheckAndUnlockAsync(userID)

	return review, nil
}

func (s *marketplaceService) ListReviews(ctx context.Context, listingID uuid.UUID) ([]*model.Review, error) {
	return s.repo.FindReviewsByListing(ctx, listingID)
}
