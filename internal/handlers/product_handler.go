package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/services"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	product, err := h.products.Create(&req, middleware.StoreID(c), middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	product, err := h.products.Get(productID, middleware.StoreID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := dto.ProductListQuery{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 20),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		CategoryID: c.Query("category_id"),
		Featured:   c.QueryBool("featured"),
	}

	products, pagination, err := h.products.List(&q, middleware.StoreID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"products": products, "pagination": pagination})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	product, err := h.products.Update(&req, productID, middleware.StoreID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	if err := h.products.Delete(productID, middleware.StoreID(c)); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Produto removido"})
}

func (h *ProductHandler) SetFeatured(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	var req dto.SetFeaturedRequest
	if err := c.BodyParser(&req); err != nil || req.IsFeatured == nil {
		return badBody(c)
	}

	product, err := h.products.SetFeatured(productID, middleware.StoreID(c), middleware.OwnerID(c), *req.IsFeatured)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(product)
}
