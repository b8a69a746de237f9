package contract

import (
	"context"

	"meal-planner-be/internal/entity"
)

type IngredientRepository interface {
	// Upsert inserts the ingredient when its canonical name is new and
	// otherwise loads the existing row. Either way ingredient ends up with
	// the persisted id.
	Upsert(ctx context.Context, ingredient *entity.Ingredient) error
}
