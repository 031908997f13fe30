package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is scoped to a store and identified by phone within it.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customers_store_phone" json:"store_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Phone     string    `gorm:"not null;size:20;uniqueIndex:idx_customers_store_phone" json:"phone"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	DeviceID  *string   `gorm:"size:255" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address rows are written once per order and never reused across orders.
type Address struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Street         string    `gorm:"not null;size:255" json:"street"`
	Number         string    `gorm:"not null;size:20" json:"number"`
	Complement     string    `gorm:"size:255" json:"complement,omitempty"`
	Neighborhood   string    `gorm:"not null;size:255" json:"neighborhood"`
	City           string    `gorm:"not null;size:255" json:"city"`
	ZipCode        string    `gorm:"not null;size:20" json:"zip_code"`
	ReferencePoint string    `gorm:"size:255" json:"reference_point,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
