package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// EntitlementErrorResponse carries the machine-readable context callers need
// to render upgrade prompts.
type EntitlementErrorResponse struct {
	Error           bool   `json:"error"`
	Message         string `json:"message"`
	CurrentCount    int64  `json:"currentCount,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	TierID          string `json:"tierId,omitempty"`
	RequiredFeature string `json:"requiredFeature,omitempty"`
	RequiredTier    string `json:"requiredTier,omitempty"`
	Upgrade         bool   `json:"upgrade"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
