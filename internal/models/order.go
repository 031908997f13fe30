package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OrderStatusProcessing = "em_processamento"
	OrderStatusPreparing  = "em_preparacao"
	OrderStatusEnRoute    = "em_rota"
	OrderStatusCompleted  = "finalizado"
	OrderStatusCanceled   = "cancelado"
	OrderStatusRefused    = "recusado"
)

const (
	PaymentStatusPending     = "pendente"
	PaymentStatusConfirmed   = "confirmado"
	PaymentStatusUnconfirmed = "nao_confirmado"
)

const (
	PaymentMethodPix  = "pix"
	PaymentMethodCard = "cartao"
	PaymentMethodCash = "dinheiro"
)

// Order invariant: Total = Subtotal + DeliveryFee - Discount, with Subtotal
// recomputed server-side from live product records at creation time.
type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	CustomerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	AddressID       uuid.UUID      `gorm:"type:uuid;not null" json:"address_id"`
	CouponID        *uuid.UUID     `gorm:"type:uuid" json:"coupon_id"`
	Status          string         `gorm:"size:30;not null;default:'em_processamento';index" json:"status"`
	PaymentMethod   string         `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus   string         `gorm:"size:20;not null;default:'pendente'" json:"payment_status"`
	PaymentProofURL string         `gorm:"size:1000" json:"payment_proof_url,omitempty"`
	Subtotal        float64        `gorm:"not null" json:"subtotal"`
	DeliveryFee     float64        `gorm:"not null;default:0" json:"delivery_fee"`
	Discount        float64        `gorm:"not null;default:0" json:"discount"`
	Total           float64        `gorm:"not null" json:"total"`
	ChangeFor       *float64       `json:"change_for,omitempty"`
	Notes           string         `gorm:"size:1000" json:"notes,omitempty"`
	Origin          string         `gorm:"size:20" json:"origin,omitempty"`
	DeviceInfo      datatypes.JSON `json:"device_info,omitempty"`
	CanceledBy      string         `gorm:"size:20" json:"canceled_by,omitempty"`
	CanceledReason  string         `gorm:"size:500" json:"canceled_reason,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Customer *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Address  *Address             `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items    []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	History  []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
}

// OrderItem is an immutable snapshot of product price at order time.
type OrderItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  float64        `gorm:"not null" json:"unit_price"`
	TotalPrice float64        `gorm:"not null" json:"total_price"`
	Notes      string         `gorm:"size:500" json:"notes,omitempty"`
	Options    datatypes.JSON `json:"options,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// OrderStatusHistory is an append-only audit log; one row per transition,
// including creation and cancellation.
type OrderStatusHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    string    `gorm:"size:30;not null" json:"status"`
	Notes     string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
