package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMealsPerDay applies when a user saved preferences without a meals-per-day value.
const DefaultMealsPerDay = 3

// CalorieWindowSlack is the +/- range around the per-meal calorie target.
const CalorieWindowSlack = 200

type Preference struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	DietType      string
	CalorieTarget *int
	Allergies     string // comma-separated intolerance tokens
	MealsPerDay   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Preference) EffectiveMealsPerDay() int {
	if p.MealsPerDay <= 0 {
		return DefaultMealsPerDay
	}
	return p.MealsPerDay
}

// Intolerances returns the allergy list with blanks removed, joined the way
// the provider expects it.
func (p *Preference) Intolerances() string {
	parts := strings.Split(p.Allergies, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return strings.Join(cleaned, ",")
}

// CalorieWindow returns the per-meal calorie range derived from the daily
// target. ok is false when no target is set.
func (p *Preference) CalorieWindow() (min, max int, ok bool) {
	if p.CalorieTarget == nil || *p.CalorieTarget <= 0 {
		return 0, 0, false
	}
	perMeal := *p.CalorieTarget / p.EffectiveMealsPerDay()
	min = perMeal - CalorieWindowSlack
	if min < 0 {
		min = 0
	}
	return min, perMeal + CalorieWindowSlack, true
}
