package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create registers an order the owner typed in by hand (phone or counter
// sales). Storefront orders come in through the customer routes.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orders.Create(&req, middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	order, err := h.orders.GetByID(orderID, middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	q := dto.OrderListQuery{
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
		PaymentStatus: c.Query("payment_status"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 20),
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.AddDate(0, 0, 1)
			q.DateTo = &end
		}
	}

	orders, pagination, err := h.orders.List(&q, middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders, "pagination": pagination})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orders.UpdateStatus(orderID, req.Status, req.Notes, middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) UpdatePaymentProof(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	var req dto.PaymentProofRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orders.UpdatePaymentProof(orderID, req.PaymentProofURL, middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badBody(c)
	}

	order, err := h.orders.ConfirmPayment(orderID, middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(order)
}
