package model

import (
	"time"

	"github.com/google/uuid"
)

// SiteSetting is a key/value pair edited from the admin dashboard.
type SiteSetting struct {
	Key         string     `gorm:"size:100;primaryKey" json:"key"`
	Value       string     `gorm:"type:text;not null" json:"value"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by_id,omitempty"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
