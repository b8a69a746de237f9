package implementation

import (
	"context"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/mapper"
	"meal-planner-be/internal/model"
	"meal-planner-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecipeMapper
}

func NewIngredientRepository(db *gorm.DB) contract.IngredientRepository {
	return &IngredientRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecipeMapper(),
	}
}

func (r *IngredientRepositoryImpl) Upsert(ctx context.Context, ingredient *entity.Ingredient) error {
	m := r.mapper.IngredientToModel(ingredient)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Existing row wins; its category is kept.
		var existing model.Ingredient
		if err := r.db.WithContext(ctx).Where("name = ?", m.Name).First(&existing).Error; err != nil {
			return err
		}
		m = &existing
	}

	*ingredient = *r.mapper.IngredientToEntity(m)
	return nil
}
