package controller

import (
	"strconv"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/serverutils"
	"meal-planner-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecipeController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type recipeController struct {
	recipeService service.IRecipeService
}

func NewRecipeController(recipeService service.IRecipeService) RecipeController {
	return &recipeController{
		recipeService: recipeService,
	}
}

func (c *recipeController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/recipes/v1", jwtMiddleware)
	h.Get("/search", c.Search)
	h.Get("/random", c.Random)
	h.Get("/:id", c.Detail)
}

func (c *recipeController) Search(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.RecipeSearchRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.BadRequest("Invalid query")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.recipeService.Search(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Recipes retrieved", res))
}

func (c *recipeController) Random(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.RandomRecipeRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.BadRequest("Invalid query")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.recipeService.Random(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Recipes retrieved", res))
}

func (c *recipeController) Detail(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperror.BadRequest("Invalid recipe id")
	}

	res, err := c.recipeService.Detail(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Recipe retrieved", res))
}
