package models

import (
	"time"

	"github.com/google/uuid"
)

// PlanHistory records every subscription lifecycle change driven by the
// payment gateway, one row per webhook-applied change.
type PlanHistory struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanName             string     `gorm:"size:50;not null" json:"plan_name"`
	StartDate            time.Time  `gorm:"not null" json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	PaymentStatus        string     `gorm:"size:20" json:"payment_status"`
	AmountPaid           float64    `json:"amount_paid"`
	PaymentMethod        string     `gorm:"size:30" json:"payment_method"`
	StripeSessionID      string     `gorm:"size:255" json:"-"`
	StripeInvoiceID      string     `gorm:"size:255" json:"-"`
	StripeSubscriptionID string     `gorm:"size:255;index" json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
}
