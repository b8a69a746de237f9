package mapper

import (
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/model"

	"gorm.io/datatypes"
)

type ShoppingListMapper struct{}

func NewShoppingListMapper() *ShoppingListMapper {
	return &ShoppingListMapper{}
}

func (m *ShoppingListMapper) ToEntity(s *model.ShoppingListItem) *entity.ShoppingListItem {
	if s == nil {
		return nil
	}
	quantities := make([]entity.Quantity, len(s.Quantities))
	for i, q := range s.Quantities {
		quantities[i] = entity.Quantity{Amount: q.Amount, Unit: q.Unit}
	}
	return &entity.ShoppingListItem{
		Id:           s.Id,
		PlanId:       s.PlanId,
		IngredientId: s.IngredientId,
		TotalAmount:  s.TotalAmount,
		Unit:         s.Unit,
		Notes:        s.Notes,
		Quantities:   quantities,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *ShoppingListMapper) ToModel(s *entity.ShoppingListItem) *model.ShoppingListItem {
	if s == nil {
		return nil
	}
	quantities := make([]model.Quantity, len(s.Quantities))
	for i, q := range s.Quantities {
		quantities[i] = model.Quantity{Amount: q.Amount, Unit: q.Unit}
	}
	return &model.ShoppingListItem{
		Id:           s.Id,
		PlanId:       s.PlanId,
		IngredientId: s.IngredientId,
		TotalAmount:  s.TotalAmount,
		Unit:         s.Unit,
		Notes:        s.Notes,
		Quantities:   datatypes.NewJSONSlice(quantities),
		CreatedAt:    s.CreatedAt,
	}
}
