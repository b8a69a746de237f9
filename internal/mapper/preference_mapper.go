package mapper

import (
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.Preference) *entity.Preference {
	if p == nil {
		return nil
	}
	return &entity.Preference{
		Id:            p.Id,
		UserId:        p.UserId,
		DietType:      p.DietType,
		CalorieTarget: p.CalorieTarget,
		Allergies:     p.Allergies,
		MealsPerDay:   p.MealsPerDay,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.Preference) *model.Preference {
	if p == nil {
		return nil
	}
	return &model.Preference{
		Id:            p.Id,
		UserId:        p.UserId,
		DietType:      p.DietType,
		CalorieTarget: p.CalorieTarget,
		Allergies:     p.Allergies,
		MealsPerDay:   p.MealsPerDay,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
