package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StoreStatusActive   = "active"
	StoreStatusInactive = "inactive"
)

// Store is a merchant storefront. Each user owns at most one store; the
// unique index on user_id backs the "one store per user" rule.
type Store struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Slug           string         `gorm:"not null;size:255;uniqueIndex" json:"slug"`
	Address        string         `gorm:"size:500" json:"address"`
	Neighborhood   string         `gorm:"size:255" json:"neighborhood"`
	City           string         `gorm:"size:255" json:"city"`
	LogoURL        string         `gorm:"size:1000" json:"logo_url"`
	BannerURL      string         `gorm:"size:1000" json:"banner_url"`
	Theme          datatypes.JSON `json:"theme"`
	PaymentMethods datatypes.JSON `json:"payment_methods"`
	BusinessHours  datatypes.JSON `json:"business_hours"`
	Status         string         `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
