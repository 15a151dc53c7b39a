package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CampaignStatusDraft    = "draft"
	CampaignStatusActive   = "active"
	CampaignStatusArchived = "archived"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

type Campaign struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Slug        string         `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;index;not null;default:draft" json:"status"`
	XPReward    int            `gorm:"not null;default:0" json:"xp_reward"`
	StartsAt    *time.Time     `json:"starts_at,omitempty"`
	EndsAt      *time.Time     `json:"ends_at,omitempty"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;not null" json:"created_by_id"`
	Tasks       []CampaignTask `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CampaignTask struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID  uuid.UUID `gorm:"type:uuid;index;not null" json:"campaign_id"`
	Position    int       `gorm:"not null" json:"position"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Points      int       `gorm:"not null;default:0" json:"points"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *CampaignTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Submission is a user's proof-of-completion for one task. One row per
// (task, user); a rejected submission is overwritten on resubmit.
type Submission struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_task_user,priority:1" json:"task_id"`
	Task       CampaignTask `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_task_user,priority:2" json:"user_id"`
	User       User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ProofURL   string       `gorm:"type:text;not null" json:"proof_url"`
	Note       string       `gorm:"type:text" json:"note"`
	Status     string       `gorm:"size:20;index;not null;default:pending" json:"status"`
	ReviewerID *uuid.UUID   `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	ReviewNote string       `gorm:"type:text" json:"review_note"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
