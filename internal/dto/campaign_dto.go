package dto

import "time"

type CreateCampaignTaskInput struct {
	Title       string `json:"title" binding:"required,max=150"`
	Description string `json:"description"`
	Points      int    `json:"points" binding:"omitempty,min=0"`
}

type CreateCampaignInput struct {
	Title       string                    `json:"title" binding:"required,max=150"`
	Description string                    `json:"description"`
	XPReward    int                       `json:"xp_reward" binding:"omitempty,min=0"`
	StartsAt    *time.Time                `json:"starts_at"`
	EndsAt      *time.Time                `json:"ends_at"`
	Tasks       []CreateCampaignTaskInput `json:"tasks" binding:"required,min=1,dive"`
}

type UpdateCampaignInput struct {
	Title       *string    `json:"title" binding:"omitempty,max=150"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=draft active archived"`
	XPReward    *int       `json:"xp_reward" binding:"omitempty,min=0"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type SubmitProofInput struct {
	Note string `form:"note" binding:"omitempty,max=2000"`
}

type ReviewSubmissionInput struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" binding:"omitempty,max=2000"`
}
