package controller

import (
	"meal-planner-be/internal/pkg/serverutils"
	"meal-planner-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router)
}

type planController struct {
	tierService service.TierService
}

func NewPlanController(tierService service.TierService) PlanController {
	return &planController{
		tierService: tierService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router) {
	// Public
	api.Get("/plans/tiers", c.GetTiers)
}

// GetTiers returns the limits of every subscription tier for the pricing page
// @Summary Get subscription tiers
// @Tags Plans
// @Produce json
// @Success 200 {object} []dto.TierResponse
// @Router /api/plans/tiers [get]
func (c *planController) GetTiers(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Tiers retrieved", c.tierService.GetTiers(ctx.Context())))
}
