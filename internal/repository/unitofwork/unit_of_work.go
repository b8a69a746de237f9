package unitofwork

import (
	"context"

	"meal-planner-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// SavePoint and RollbackTo scope a best-effort step inside an open
	// transaction so its failure does not abort the whole transaction.
	SavePoint(name string) error
	RollbackTo(name string) error

	UserRepository() contract.UserRepository
	PreferenceRepository() contract.PreferenceRepository
	MealPlanRepository() contract.MealPlanRepository
	RecipeRepository() contract.RecipeRepository
	IngredientRepository() contract.IngredientRepository
	ShoppingListRepository() contract.ShoppingListRepository
}
