package dto

import "github.com/google/uuid"

type IdentifyCustomerRequest struct {
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	DeviceInfo *DeviceInfo `json:"device_info,omitempty"`
}

type IdentifiedCustomer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	IsNew bool      `json:"is_new"`
}

type IdentifyCustomerResponse struct {
	Customer     IdentifiedCustomer `json:"customer"`
	Addresses    any                `json:"addresses"`
	RecentOrders any                `json:"recent_orders"`
	Token        string             `json:"token"`
}

type CustomerOrderResponse struct {
	Message       string    `json:"message"`
	Order         any       `json:"order"`
	OrderID       uuid.UUID `json:"order_id"`
	EstimatedTime int       `json:"estimated_time"`
	Token         string    `json:"token"`
}
