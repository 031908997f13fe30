package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a merchant account. Plan fields are written by the Stripe webhook
// path and read (and lazily corrected) by the entitlement evaluator.
type User struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email                string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password             string         `gorm:"not null" json:"-"`
	Name                 string         `gorm:"size:255" json:"name"`
	PlanActive           *string        `gorm:"size:50" json:"plan_active"`
	PlanExpireAt         *time.Time     `json:"plan_expire_at"`
	SubscriptionStatus   string         `gorm:"size:50" json:"subscription_status"`
	StripeCustomerID     string         `gorm:"size:255;index" json:"-"`
	StripeSubscriptionID string         `gorm:"size:255;index" json:"-"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
