package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/services"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Insights(c *fiber.Ctx) error {
	insights, err := h.dashboard.Insights(middleware.StoreID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(insights)
}
