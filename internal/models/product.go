package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

// Product belongs to exactly one store. When DiscountPrice is set it is
// authoritative over Price for order-line pricing.
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Slug          string         `gorm:"not null;size:255;index" json:"slug"`
	Description   string         `gorm:"size:2000" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	DiscountPrice *float64       `json:"discount_price"`
	ImageURL      string         `gorm:"size:1000" json:"image_url"`
	Status        string         `gorm:"size:20;not null;default:'active'" json:"status"`
	IsFeatured    bool           `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// UnitPrice is the authoritative per-unit price used for order lines.
func (p *Product) UnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

type ProductCategory struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"size:1000" json:"description"`
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
