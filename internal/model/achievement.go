package model

import (
	"time"

	"github.com/google/uuid"
)

// Achievement categories. Values are stored as-is, keep them stable.
const (
	CategoryContribution = "contribution"
	CategoryMarketplace  = "marketplace"
	CategorySocial       = "social"
	CategoryEngagement   = "engagement"
	CategorySpecial      = "special"
)

// Achievement tiers, ordered bronze < silver < gold < legendary.
const (
	TierBronze    = "bronze"
	TierSilver    = "silver"
	TierGold      = "gold"
	TierLegendary = "legendary"
)

// Requirement comparison operators.
const (
	CompareEq  = "eq"
	CompareGte = "gte"
	CompareLte = "lte"
	CompareGt  = "gt"
)

// Achievement is the persisted copy of a catalog definition. Rows are seeded
// from the compiled-in catalog and never edited afterwards; UnlockCount is the
// only mutable column.
type Achievement struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Code        string     `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Icon        string     `gorm:"size:20" json:"icon"`
	Category    string     `gorm:"size:20;index;not null" json:"category"`
	Tier        string     `gorm:"size:20;not null" json:"tier"`
	XP          int        `gorm:"not null;default:0" json:"xp"`
	ReqType     string     `gorm:"size:50;not null" json:"req_type"`
	ReqCount    int        `gorm:"not null;default:1" json:"req_count"`
	ReqCompare  string     `gorm:"size:10;not null;default:gte" json:"req_compare"`
	Visible     bool       `gorm:"not null;default:true" json:"visible"`
	UnlockCount int        `gorm:"not null;default:0" json:"unlock_count"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// UserAchievement is the unlock record. Created exactly once per
// (user, achievement) pair — the composite unique index is what resolves
// concurrent evaluation races — and is immutable afterwards.
type UserAchievement struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	User          User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AchievementID uint        `gorm:"not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	Progress      int         `gorm:"not null" json:"progress"`
	MaxProgress   int         `gorm:"not null" json:"max_progress"`
	UnlockedAt    time.Time   `gorm:"autoCreateTime" json:"unlocked_at"`
}

// UserStats is a value object recomputed on every evaluation call, never
// persisted or cached.
type UserStats struct {
	BlogPosts            int `json:"blog_posts"`
	Comments             int `json:"comments"`
	Listings             int `json:"listings"`
	Offers               int `json:"offers"`
	Reviews              int `json:"reviews"`
	ConversationsStarted int `json:"conversations_started"`
	Logins               int `json:"logins"`
	LoginStreak          int `json:"login_streak"`
	ProfileCompleteness  int `json:"profile_completeness"` // 0-100 in 25-point steps
}
