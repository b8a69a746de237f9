package controller

import (
	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/serverutils"
	"meal-planner-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type userController struct {
	userService       service.IUserService
	preferenceService service.IPreferenceService
	tierService       service.TierService
}

func NewUserController(
	userService service.IUserService,
	preferenceService service.IPreferenceService,
	tierService service.TierService,
) UserController {
	return &userController{
		userService:       userService,
		preferenceService: preferenceService,
		tierService:       tierService,
	}
}

func (c *userController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/user/v1", jwtMiddleware)
	h.Get("/me", c.Me)
	h.Get("/usage-status", c.GetUsageStatus)
	h.Get("/preferences", c.GetPreferences)
	h.Post("/preferences", c.SavePreferences)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.Me(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("User retrieved", res))
}

// GetUsageStatus returns current usage vs limits for the authenticated user
// @Summary Get user usage status
// @Description Returns plan count and daily recipe requests against the tier limits
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UsageStatusResponse
// @Router /api/user/v1/usage-status [get]
func (c *userController) GetUsageStatus(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	status, err := c.tierService.GetUsageStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Usage status retrieved", status))
}

func (c *userController) GetPreferences(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.preferenceService.Get(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Preferences retrieved", res))
}

func (c *userController) SavePreferences(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SavePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.preferenceService.Save(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Preferences saved", res))
}
