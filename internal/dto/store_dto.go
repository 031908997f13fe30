package dto

import "gorm.io/datatypes"

type CreateStoreRequest struct {
	Name           string         `json:"name"`
	Slug           string         `json:"slug,omitempty"`
	Address        string         `json:"address"`
	Neighborhood   string         `json:"neighborhood"`
	City           string         `json:"city"`
	LogoURL        string         `json:"logo_url,omitempty"`
	BannerURL      string         `json:"banner_url,omitempty"`
	Theme          datatypes.JSON `json:"theme,omitempty"`
	PaymentMethods []string       `json:"payment_methods"`
	BusinessHours  datatypes.JSON `json:"business_hours,omitempty"`
}

// UpdateStoreRequest uses pointers so absent fields are left untouched.
type UpdateStoreRequest struct {
	Name           *string        `json:"name,omitempty"`
	Slug           *string        `json:"slug,omitempty"`
	Address        *string        `json:"address,omitempty"`
	Neighborhood   *string        `json:"neighborhood,omitempty"`
	City           *string        `json:"city,omitempty"`
	LogoURL        *string        `json:"logo_url,omitempty"`
	BannerURL      *string        `json:"banner_url,omitempty"`
	Theme          datatypes.JSON `json:"theme,omitempty"`
	PaymentMethods []string       `json:"payment_methods,omitempty"`
	BusinessHours  datatypes.JSON `json:"business_hours,omitempty"`
}

type StoreStatusRequest struct {
	Status string `json:"status"`
}
