package implementation

import (
	"context"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/mapper"
	"meal-planner-be/internal/model"
	"meal-planner-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecipeMapper
}

func NewRecipeRepository(db *gorm.DB) contract.RecipeRepository {
	return &RecipeRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecipeMapper(),
	}
}

func (r *RecipeRepositoryImpl) Create(ctx context.Context, recipe *entity.Recipe) error {
	m := r.mapper.ToModel(recipe)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*recipe = *r.mapper.ToEntity(m)
	return nil
}

func (r *RecipeRepositoryImpl) AddIngredient(ctx context.Context, ri *entity.RecipeIngredient) error {
	m := r.mapper.RecipeIngredientToModel(ri)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ri = *r.mapper.RecipeIngredientToEntity(m)
	return nil
}

func (r *RecipeRepositoryImpl) FindIngredientDetails(ctx context.Context, recipeIds []uuid.UUID) ([]*entity.RecipeIngredientDetail, error) {
	if len(recipeIds) == 0 {
		return []*entity.RecipeIngredientDetail{}, nil
	}

	var rows []*model.RecipeIngredientRow
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.recipe_id, recipe_ingredients.ingredient_id, ingredients.name, ingredients.display_name, ingredients.category, recipe_ingredients.amount, recipe_ingredients.unit").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", recipeIds).
		Order("ingredients.category ASC, ingredients.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.DetailsToEntities(rows), nil
}
