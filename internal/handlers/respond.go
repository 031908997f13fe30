package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/dto"
)

// handleError maps domain errors onto the HTTP surface. Anything not in the
// taxonomy is logged and collapsed into a generic 500 so internals never
// leak to clients.
func handleError(c *fiber.Ctx, err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: ve.Message,
		})
	}

	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: nf.Error(),
		})
	}

	var ent *apperr.EntitlementError
	if errors.As(err, &ent) {
		return c.Status(fiber.StatusForbidden).JSON(dto.EntitlementErrorResponse{
			Error:           true,
			Message:         ent.Message,
			CurrentCount:    ent.CurrentCount,
			Limit:           ent.Limit,
			TierID:          ent.TierID,
			RequiredFeature: ent.RequiredFeature,
			RequiredTier:    ent.RequiredTier,
			Upgrade:         true,
		})
	}

	var st *apperr.StateTransitionError
	if errors.As(err, &st) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: st.Error(),
		})
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
