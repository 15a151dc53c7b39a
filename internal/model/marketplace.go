package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ListingStatusOpen   = "open"
	ListingStatusClosed = "closed"
)

const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusDeclined = "declined"
)

type Listing struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"seller_id"`
	Seller      User      `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int       `gorm:"not null" json:"price"`
	Status      string    `gorm:"size:20;index;not null;default:open" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Offer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID uuid.UUID `gorm:"type:uuid;index;not null" json:"listing_id"`
	Listing   Listing   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	BuyerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"buyer_id"`
	Buyer     User      `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Amount    int       `gorm:"not null" json:"amount"`
	Status    string    `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Review is one per (listing, reviewer), enforced by the composite index.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_reviewer,priority:1" json:"listing_id"`
	Listing    Listing   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_reviewer,priority:2" json:"reviewer_id"`
	Reviewer   User      `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
