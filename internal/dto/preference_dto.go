package dto

import (
	"time"

	"github.com/google/uuid"
)

// SavePreferencesRequest does not check meals per day against the tier.
// That bound is enforced when a plan is generated.
type SavePreferencesRequest struct {
	DietType      string `json:"diet_type" validate:"max=100"`
	CalorieTarget *int   `json:"calorie_target" validate:"omitempty,min=1,max=20000"`
	Allergies     string `json:"allergies" validate:"max=500"`
	MealsPerDay   int    `json:"meals_per_day" validate:"omitempty,min=1,max=10"`
}

type PreferenceResponse struct {
	Id            uuid.UUID `json:"preference_id"`
	UserId        uuid.UUID `json:"user_id"`
	DietType      string    `json:"diet_type"`
	CalorieTarget *int      `json:"calorie_target"`
	Allergies     string    `json:"allergies"`
	MealsPerDay   int       `json:"meals_per_day"`
	UpdatedAt     time.Time `json:"updated_at"`
}
