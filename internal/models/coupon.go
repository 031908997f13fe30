package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Coupon usage_count is incremented once per successful application and is
// never decremented; cancelling an order does not release its coupon use.
type Coupon struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_coupons_store_code" json:"store_id"`
	Code              string         `gorm:"not null;size:50;uniqueIndex:idx_coupons_store_code" json:"code"`
	DiscountType      string         `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue     float64        `gorm:"not null" json:"discount_value"`
	MinOrderValue     float64        `gorm:"not null;default:0" json:"min_order_value"`
	MaxDiscountAmount *float64       `json:"max_discount_amount"`
	ValidFrom         time.Time      `gorm:"not null" json:"valid_from"`
	ValidUntil        time.Time      `gorm:"not null" json:"valid_until"`
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`
	UsageLimit        *int           `json:"usage_limit"`
	UsageCount        int            `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
