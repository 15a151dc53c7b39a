package dto

import "time"

// EvaluationResult is what one evaluator pass reports back: the codes
// unlocked by this call and the live progress value for every candidate that
// is still locked.
type EvaluationResult struct {
	Unlocked []string       `json:"unlocked"`
	Progress map[string]int `json:"progress"`
}

// AchievementView is one display row for the achievements page: the catalog
// entry annotated with the viewing user's unlock state. Locked rows always
// show progress 0; live values come from the evaluator, not the listing.
type AchievementView struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Category    string     `json:"category"`
	Tier        string     `json:"tier"`
	XP          int        `json:"xp"`
	UnlockCount int        `json:"unlock_count"`
	Unlocked    bool       `json:"unlocked"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"max_progress"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}
