package controller

import (
	"meal-planner-be/internal/pkg/serverutils"
	"meal-planner-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MealPlanController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type mealPlanController struct {
	mealPlanService service.IMealPlanService
}

func NewMealPlanController(mealPlanService service.IMealPlanService) MealPlanController {
	return &mealPlanController{
		mealPlanService: mealPlanService,
	}
}

func (c *mealPlanController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/mealplan/v1", jwtMiddleware)
	h.Post("/generate", c.Generate)
	h.Get("/user/:userId", c.GetLatestByUser)
	h.Put("/item/:itemId", c.ReplaceItem)
	h.Delete("/:planId", c.Delete)
}

// Generate builds a week of meals from the caller's preferences
// @Summary Generate meal plan
// @Tags MealPlan
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.GenerateMealPlanResponse
// @Router /api/mealplan/v1/generate [post]
func (c *mealPlanController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.mealPlanService.Generate(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Meal plan generated", res))
}

// GetLatestByUser returns the most recent plan, or null
// @Summary Get latest meal plan
// @Tags MealPlan
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MealPlanResponse
// @Router /api/mealplan/v1/user/{userId} [get]
func (c *mealPlanController) GetLatestByUser(ctx *fiber.Ctx) error {
	requesterId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	userId, err := serverutils.ParamUUID(ctx, "userId")
	if err != nil {
		return err
	}

	res, err := c.mealPlanService.GetLatestByUser(ctx.Context(), requesterId, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Meal plan retrieved", res))
}

// ReplaceItem swaps one meal for a random recipe with the same filters
// @Summary Replace meal
// @Tags MealPlan
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ReplaceMealResponse
// @Router /api/mealplan/v1/item/{itemId} [put]
func (c *mealPlanController) ReplaceItem(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	itemId, err := serverutils.ParamUUID(ctx, "itemId")
	if err != nil {
		return err
	}

	res, err := c.mealPlanService.ReplaceItem(ctx.Context(), userId, itemId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Meal replaced", res))
}

func (c *mealPlanController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	planId, err := serverutils.ParamUUID(ctx, "planId")
	if err != nil {
		return err
	}

	if err := c.mealPlanService.Delete(ctx.Context(), userId, planId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Meal plan deleted", nil))
}
