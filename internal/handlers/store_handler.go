package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/services"
)

type StoreHandler struct {
	stores *services.StoreService
}

func NewStoreHandler(stores *services.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

func (h *StoreHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	store, err := h.stores.Create(&req, userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

func (h *StoreHandler) Mine(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	store, err := h.stores.GetByUser(userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(store)
}

func (h *StoreHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	store, err := h.stores.Update(&req, userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(store)
}

func (h *StoreHandler) SetStatus(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.StoreStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	store, err := h.stores.SetStatus(req.Status, userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(store)
}

// BySlug serves the public storefront lookup. Inactive stores 404.
func (h *StoreHandler) BySlug(c *fiber.Ctx) error {
	store, err := h.stores.GetBySlug(c.Params("slug"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(store)
}
