package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/services"
)

// CustomerHandler serves the public storefront: catalog browsing, customer
// identification and order placement, all keyed by the store's slug.
type CustomerHandler struct {
	stores     *services.StoreService
	products   *services.ProductService
	categories *services.CategoryService
	customers  *services.CustomerOrderService
}

func NewCustomerHandler(
	stores *services.StoreService,
	products *services.ProductService,
	categories *services.CategoryService,
	customers *services.CustomerOrderService,
) *CustomerHandler {
	return &CustomerHandler{
		stores:     stores,
		products:   products,
		categories: categories,
		customers:  customers,
	}
}

func (h *CustomerHandler) storeFromSlug(c *fiber.Ctx) (*models.Store, error) {
	return h.stores.GetBySlug(c.Params("slug"))
}

// Catalog returns the storefront payload: store profile, categories, and
// active products only.
func (h *CustomerHandler) Catalog(c *fiber.Ctx) error {
	store, err := h.storeFromSlug(c)
	if err != nil {
		return handleError(c, err)
	}

	categories, err := h.categories.List(store.ID)
	if err != nil {
		return handleError(c, err)
	}

	q := dto.ProductListQuery{
		Page:   1,
		Limit:  500,
		Status: models.ProductStatusActive,
	}
	products, _, err := h.products.List(&q, store.ID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"store":      store,
		"categories": categories,
		"products":   products,
	})
}

func (h *CustomerHandler) Identify(c *fiber.Ctx) error {
	store, err := h.storeFromSlug(c)
	if err != nil {
		return handleError(c, err)
	}

	var req dto.IdentifyCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.customers.Identify(store.ID, &req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

func (h *CustomerHandler) CreateOrder(c *fiber.Ctx) error {
	store, err := h.storeFromSlug(c)
	if err != nil {
		return handleError(c, err)
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.customers.CreateOrder(store.ID, &req)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *CustomerHandler) OrderStatus(c *fiber.Ctx) error {
	customerID, err := middleware.CustomerID(c)
	if err != nil {
		return unauthorized(c)
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	resp, err := h.customers.OrderStatus(orderID, customerID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

func (h *CustomerHandler) CancelOrder(c *fiber.Ctx) error {
	customerID, err := middleware.CustomerID(c)
	if err != nil {
		return unauthorized(c)
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	var req dto.CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.customers.CancelOrder(orderID, customerID, req.Reason); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pedido cancelado"})
}
