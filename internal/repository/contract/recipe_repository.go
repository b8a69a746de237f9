package contract

import (
	"context"

	"meal-planner-be/internal/entity"

	"github.com/google/uuid"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error

	AddIngredient(ctx context.Context, ri *entity.RecipeIngredient) error
	// FindIngredientDetails joins recipe_ingredients with ingredients for the
	// given recipes. Duplicate recipe ids are not expanded.
	FindIngredientDetails(ctx context.Context, recipeIds []uuid.UUID) ([]*entity.RecipeIngredientDetail, error)
}
