package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/services"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	category, err := h.categories.Create(&req, middleware.StoreID(c), middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(middleware.StoreID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	category, err := h.categories.Update(&req, categoryID, middleware.StoreID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	if err := h.categories.Delete(categoryID, middleware.StoreID(c)); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Categoria removida"})
}
