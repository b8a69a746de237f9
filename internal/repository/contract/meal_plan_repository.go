package contract

import (
	"context"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MealPlanRepository interface {
	Create(ctx context.Context, plan *entity.MealPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MealPlan, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateItem(ctx context.Context, item *entity.MealPlanItem) error
	FindItem(ctx context.Context, specs ...specification.Specification) (*entity.MealPlanItem, error)
	UpdateItemRecipe(ctx context.Context, itemId uuid.UUID, recipeId uuid.UUID) error
	DeleteItemsByPlan(ctx context.Context, planId uuid.UUID) error

	// FindItemsWithRecipes returns the plan's items with Recipe populated,
	// ordered Mon..Sun then by meal number.
	FindItemsWithRecipes(ctx context.Context, planId uuid.UUID) ([]*entity.MealPlanItem, error)
}
