package dto

import (
	"time"

	"github.com/google/uuid"
)

type MealPlanItemResponse struct {
	Id         uuid.UUID `json:"item_id"`
	PlanId     uuid.UUID `json:"plan_id"`
	DayOfWeek  string    `json:"day_of_week"`
	MealNumber int       `json:"meal_number"`
	RecipeId   uuid.UUID `json:"recipe_id"`
	Title      string    `json:"title,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	Calories   float64   `json:"calories"`
}

type MealPlanResponse struct {
	Id            uuid.UUID               `json:"plan_id"`
	UserId        uuid.UUID               `json:"user_id"`
	WeekStartDate time.Time               `json:"week_start_date"`
	CreatedAt     time.Time               `json:"created_at"`
	Items         []*MealPlanItemResponse `json:"items"`
}

type GenerateMealPlanResponse struct {
	MealPlan    *MealPlanResponse `json:"meal_plan"`
	MealsPerDay int               `json:"meals_per_day"`
	TotalMeals  int               `json:"total_meals"`
}

type ReplaceMealResponse struct {
	Item *MealPlanItemResponse `json:"item"`
}
