package mapper

import (
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/model"
)

type RecipeMapper struct{}

func NewRecipeMapper() *RecipeMapper {
	return &RecipeMapper{}
}

func (m *RecipeMapper) ToEntity(r *model.Recipe) *entity.Recipe {
	if r == nil {
		return nil
	}
	return &entity.Recipe{
		Id:         r.Id,
		ExternalId: r.ExternalId,
		Title:      r.Title,
		ImageURL:   r.ImageURL,
		Source:     r.Source,
		Calories:   r.Calories,
		DietType:   r.DietType,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RecipeMapper) ToModel(r *entity.Recipe) *model.Recipe {
	if r == nil {
		return nil
	}
	return &model.Recipe{
		Id:         r.Id,
		ExternalId: r.ExternalId,
		Title:      r.Title,
		ImageURL:   r.ImageURL,
		Source:     r.Source,
		Calories:   r.Calories,
		DietType:   r.DietType,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RecipeMapper) IngredientToEntity(i *model.Ingredient) *entity.Ingredient {
	if i == nil {
		return nil
	}
	return &entity.Ingredient{
		Id:          i.Id,
		Name:        i.Name,
		DisplayName: i.DisplayName,
		Category:    i.Category,
	}
}

func (m *RecipeMapper) IngredientToModel(i *entity.Ingredient) *model.Ingredient {
	if i == nil {
		return nil
	}
	return &model.Ingredient{
		Id:          i.Id,
		Name:        i.Name,
		DisplayName: i.DisplayName,
		Category:    i.Category,
	}
}

func (m *RecipeMapper) RecipeIngredientToModel(ri *entity.RecipeIngredient) *model.RecipeIngredient {
	if ri == nil {
		return nil
	}
	return &model.RecipeIngredient{
		Id:           ri.Id,
		RecipeId:     ri.RecipeId,
		IngredientId: ri.IngredientId,
		Amount:       ri.Amount,
		Unit:         ri.Unit,
	}
}

func (m *RecipeMapper) RecipeIngredientToEntity(ri *model.RecipeIngredient) *entity.RecipeIngredient {
	if ri == nil {
		return nil
	}
	return &entity.RecipeIngredient{
		Id:           ri.Id,
		RecipeId:     ri.RecipeId,
		IngredientId: ri.IngredientId,
		Amount:       ri.Amount,
		Unit:         ri.Unit,
	}
}

func (m *RecipeMapper) DetailsToEntities(rows []*model.RecipeIngredientRow) []*entity.RecipeIngredientDetail {
	details := make([]*entity.RecipeIngredientDetail, len(rows))
	for i, r := range rows {
		details[i] = &entity.RecipeIngredientDetail{
			RecipeId:     r.RecipeId,
			IngredientId: r.IngredientId,
			Name:         r.Name,
			DisplayName:  r.DisplayName,
			Category:     r.Category,
			Amount:       r.Amount,
			Unit:         r.Unit,
		}
	}
	return details
}
