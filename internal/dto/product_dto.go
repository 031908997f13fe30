package dto

import "github.com/google/uuid"

type CreateProductRequest struct {
	Name          string     `json:"name"`
	Slug          string     `json:"slug,omitempty"`
	Description   string     `json:"description,omitempty"`
	Price         float64    `json:"price"`
	DiscountPrice *float64   `json:"discount_price,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Status        string     `json:"status,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string    `json:"name,omitempty"`
	Slug          *string    `json:"slug,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Price         *float64   `json:"price,omitempty"`
	DiscountPrice *float64   `json:"discount_price,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	ImageURL      *string    `json:"image_url,omitempty"`
	Status        *string    `json:"status,omitempty"`
}

type SetFeaturedRequest struct {
	IsFeatured *bool `json:"is_featured"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

type ProductListQuery struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	CategoryID string
	Featured   bool
}
