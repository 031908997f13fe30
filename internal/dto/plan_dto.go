package dto

import "time"

type LimitCheckResponse struct {
	CurrentCount int64  `json:"currentCount"`
	Limit        int    `json:"limit"`
	CanCreate    bool   `json:"canCreate"`
	TierID       string `json:"tierId"`
}

type PlanInfoResponse struct {
	PlanName      string     `json:"planName"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	DaysRemaining *int       `json:"daysRemaining"`
	Limits        PlanLimits `json:"limits"`
	Features      []string   `json:"features"`
}

type PlanLimits struct {
	MaxProducts   int `json:"maxProducts"`
	MaxCategories int `json:"maxCategories"`
}

type SubscribeRequest struct {
	Plano string `json:"plano"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type UploadRequest struct {
	File   string `json:"file"`
	Folder string `json:"folder,omitempty"`
}

type UploadResponse struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

type DashboardInsights struct {
	TotalOrders     int64   `json:"total_orders"`
	TodayOrders     int64   `json:"today_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	WeekOrders      int64   `json:"week_orders"`
	WeekGrowthPct   float64 `json:"week_growth_pct"`
	TotalRevenue    float64 `json:"total_revenue"`
	TodayRevenue    float64 `json:"today_revenue"`
	TotalCustomers  int64   `json:"total_customers"`
	ActiveProducts  int64   `json:"active_products"`
	FeaturedProducts int64  `json:"featured_products"`
}
