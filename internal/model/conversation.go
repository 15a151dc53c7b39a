package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a direct thread between two users. StarterID is the user
// who opened it; the "conversations started" statistic counts these.
type Conversation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StarterID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair,priority:1" json:"starter_id"`
	Starter     User      `gorm:"foreignKey:StarterID" json:"starter,omitempty"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair,priority:2" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Messages    []Message `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
