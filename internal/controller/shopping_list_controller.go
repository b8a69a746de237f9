package controller

import (
	"fmt"

	"meal-planner-be/internal/pkg/serverutils"
	"meal-planner-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShoppingListController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type shoppingListController struct {
	shoppingListService service.IShoppingListService
}

func NewShoppingListController(shoppingListService service.IShoppingListService) ShoppingListController {
	return &shoppingListController{
		shoppingListService: shoppingListService,
	}
}

func (c *shoppingListController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/shoppinglist/v1", jwtMiddleware)
	h.Get("/:planId", c.Get)
	h.Get("/:planId/export", c.Export)
}

// Get aggregates the plan's ingredients by aisle and by recipe
// @Summary Get shopping list
// @Tags ShoppingList
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ShoppingListResponse
// @Router /api/shoppinglist/v1/{planId} [get]
func (c *shoppingListController) Get(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	planId, err := serverutils.ParamUUID(ctx, "planId")
	if err != nil {
		return err
	}

	res, err := c.shoppingListService.Build(ctx.Context(), userId, planId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Shopping list retrieved", res))
}

// Export returns the list as a plain text attachment
func (c *shoppingListController) Export(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	planId, err := serverutils.ParamUUID(ctx, "planId")
	if err != nil {
		return err
	}

	text, err := c.shoppingListService.Export(ctx.Context(), userId, planId)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="shopping-list-%s.txt"`, planId))
	return ctx.SendString(text)
}
