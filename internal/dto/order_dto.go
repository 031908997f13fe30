package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderItemInput deliberately carries no price field: unit prices are always
// recomputed from the live product record.
type OrderItemInput struct {
	ProductID uuid.UUID      `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Notes     string         `json:"notes,omitempty"`
	Options   datatypes.JSON `json:"options,omitempty"`
}

type CustomerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type AddressInput struct {
	Street         string `json:"street"`
	Number         string `json:"number"`
	Complement     string `json:"complement,omitempty"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	ZipCode        string `json:"zip_code"`
	ReferencePoint string `json:"reference_point,omitempty"`
}

type DeviceInfo struct {
	DeviceID string `json:"device_id,omitempty"`
}

type CreateOrderRequest struct {
	Customer      CustomerInput    `json:"customer"`
	Address       AddressInput     `json:"address"`
	Items         []OrderItemInput `json:"items"`
	CouponCode    string           `json:"coupon_code,omitempty"`
	PaymentMethod string           `json:"payment_method"`
	ChangeFor     *float64         `json:"change_for,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	DeviceInfo    *DeviceInfo      `json:"device_info,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type PaymentProofRequest struct {
	PaymentProofURL string `json:"payment_proof_url"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

type OrderListQuery struct {
	Status        string
	PaymentMethod string
	PaymentStatus string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	Limit         int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type OrderStatusResponse struct {
	OrderID                uuid.UUID            `json:"order_id"`
	Status                 string               `json:"status"`
	PaymentStatus          string               `json:"payment_status"`
	EstimatedTimeRemaining int                  `json:"estimated_time_remaining"`
	History                []StatusHistoryEntry `json:"history"`
	CanCancel              bool                 `json:"can_cancel"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
