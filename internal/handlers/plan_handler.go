package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"github.com/pedeai/pedeai-backend/internal/services"
)

type PlanHandler struct {
	plans *services.PlanService
}

func NewPlanHandler(plans *services.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// Catalog is public: the pricing page reads it.
func (h *PlanHandler) Catalog(c *fiber.Ctx) error {
	type tierView struct {
		ID            string   `json:"id"`
		Description   string   `json:"description"`
		MaxProducts   int      `json:"max_products"`
		MaxCategories int      `json:"max_categories"`
		Features      []string `json:"features"`
	}

	tiers := plan.All()
	out := make([]tierView, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierView{
			ID:            t.ID,
			Description:   t.Description,
			MaxProducts:   t.MaxProducts,
			MaxCategories: t.MaxCategories,
			Features:      t.Features,
		})
	}
	return c.JSON(out)
}

func (h *PlanHandler) Current(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	info, err := h.plans.GetPlanInfo(userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(info)
}

func (h *PlanHandler) CheckLimit(c *fiber.Ctx) error {
	resource := c.Params("resource")
	if resource != services.ResourceProduct && resource != services.ResourceCategory {
		return badBody(c)
	}

	check, err := h.plans.CheckCreateLimit(resource, middleware.StoreID(c), middleware.OwnerID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(check)
}
