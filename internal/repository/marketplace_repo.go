package repository

import (
	"context"

	"anoa.com/campquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarketplaceRepository interface {
	CreateListing(ctx context.Context, listing *model.Listing) error
	FindListingByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)
	FindListings(ctx context.Context, status string, offset, limit int) ([]*model.Listing, int64, error)
	UpdateListing(ctx context.Context, listing *model.Listing) error

	CreateOffer(ctx context.Context, offer *model.Offer) error
	FindOfferByID(ctx context.Context, id uuid.UUID) (*model.Offer, error)
	FindOffersByListing(ctx context.Context, listingID uuid.UUID) ([]*model.Offer, error)
	UpdateOffer(ctx context.Context, offer *model.Offer) error

	CreateReview(ctx context.Context, review *model.Review) error
	FindReviewsByListing(ctx context.Context, listingID uuid.UUID) ([]*model.Review, error)
}

type marketplaceRepository struct {
	db *gorm.DB
}

func NewMarketplaceRepository(db *gorm.DB) MarketplaceRepository {
	return &marketplaceRepository{db: db}
}

func (r *marketplaceRepository) CreateListing(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *marketplaceRepository) FindListingByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		Where("id = ?", id).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *marketplaceRepository) FindListings(ctx context.Context, status string, offset, limit int) ([]*model.Listing, int64, error) {
	var listings []*model.Listing
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Listing{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Seller").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (r *marketplaceRepository) UpdateListing(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *marketplaceRepository) CreateOffer(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *marketplaceRepository) FindOfferByID(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Buyer").
		Where("id = ?", id).
		First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *marketplaceRepository) FindOffersByListing(ctx context.Context, listingID uuid.UUID) ([]*model.Offer, error) {
	var offers []*model.Offer
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *marketplaceRepository) UpdateOffer(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

func (r *marketplaceRepository) CreateReview(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *marketplaceRepository) FindReviewsByListing(ctx context.Context, listingID uuid.UUID) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
