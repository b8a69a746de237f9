package mapper

import (
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/model"
)

type MealPlanMapper struct{}

func NewMealPlanMapper() *MealPlanMapper {
	return &MealPlanMapper{}
}

func (m *MealPlanMapper) ToEntity(p *model.MealPlan) *entity.MealPlan {
	if p == nil {
		return nil
	}
	return &entity.MealPlan{
		Id:            p.Id,
		UserId:        p.UserId,
		WeekStartDate: p.WeekStartDate,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *MealPlanMapper) ToModel(p *entity.MealPlan) *model.MealPlan {
	if p == nil {
		return nil
	}
	return &model.MealPlan{
		Id:            p.Id,
		UserId:        p.UserId,
		WeekStartDate: p.WeekStartDate,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *MealPlanMapper) ItemToEntity(i *model.MealPlanItem) *entity.MealPlanItem {
	if i == nil {
		return nil
	}
	return &entity.MealPlanItem{
		Id:         i.Id,
		PlanId:     i.PlanId,
		DayOfWeek:  entity.Weekday(i.DayOfWeek),
		MealNumber: i.MealNumber,
		RecipeId:   i.RecipeId,
	}
}

func (m *MealPlanMapper) ItemToModel(i *entity.MealPlanItem) *model.MealPlanItem {
	if i == nil {
		return nil
	}
	return &model.MealPlanItem{
		Id:         i.Id,
		PlanId:     i.PlanId,
		DayOfWeek:  string(i.DayOfWeek),
		MealNumber: i.MealNumber,
		RecipeId:   i.RecipeId,
	}
}

func (m *MealPlanMapper) ItemsToEntities(items []*model.MealPlanItem) []*entity.MealPlanItem {
	entities := make([]*entity.MealPlanItem, len(items))
	for i, item := range items {
		entities[i] = m.ItemToEntity(item)
	}
	return entities
}
