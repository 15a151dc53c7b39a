package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

type SupportTicket struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Subject   string        `gorm:"size:200;not null" json:"subject"`
	Body      string        `gorm:"type:text;not null" json:"body"`
	Status    string        `gorm:"size:20;index;not null;default:open" json:"status"`
	Replies   []TicketReply `gorm:"constraint:OnDelete:CASCADE" json:"replies,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *SupportTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TicketReply struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SupportTicketID uuid.UUID `gorm:"type:uuid;index;not null" json:"support_ticket_id"`
	AuthorID        uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author          User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *TicketReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
