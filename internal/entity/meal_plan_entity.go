package entity

import (
	"time"

	"github.com/google/uuid"
)

type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Week is the fixed Mon..Sun order used for slot assignment and display.
var Week = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the 0-based position of d in Week, or -1.
func (d Weekday) Index() int {
	for i, day := range Week {
		if day == d {
			return i
		}
	}
	return -1
}

type MealPlan struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	WeekStartDate time.Time
	CreatedAt     time.Time
	Items         []*MealPlanItem
}

type MealPlanItem struct {
	Id         uuid.UUID
	PlanId     uuid.UUID
	DayOfWeek  Weekday
	MealNumber int // 1-based
	RecipeId   uuid.UUID

	// Populated by read paths that join recipes
	Recipe *Recipe
}

// Slot is one (day, meal number) coordinate within a plan.
type Slot struct {
	Day        Weekday
	MealNumber int
}

// Slots lists every slot of a week in generation order: day-major, then meal number.
func Slots(mealsPerDay int) []Slot {
	if mealsPerDay <= 0 {
		return nil
	}
	slots := make([]Slot, 0, len(Week)*mealsPerDay)
	for _, day := range Week {
		for meal := 1; meal <= mealsPerDay; meal++ {
			slots = append(slots, Slot{Day: day, MealNumber: meal})
		}
	}
	return slots
}
