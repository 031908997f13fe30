package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/services"
)

type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
	auth          *services.AuthService
}

func NewSubscriptionHandler(subscriptions *services.SubscriptionService, auth *services.AuthService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, auth: auth}
}

// Subscribe starts a hosted checkout for one of the paid plans and returns
// the redirect URL.
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.auth.GetUser(userID)
	if err != nil {
		return handleError(c, err)
	}

	url, err := h.subscriptions.Subscribe(user, req.Plano)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPlan) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "plano invalido: " + req.Plano,
			})
		}
		return handleError(c, err)
	}

	return c.JSON(dto.CheckoutResponse{CheckoutURL: url})
}
