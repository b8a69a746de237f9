package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	WeekStartDate time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}

// MealPlanItem holds one slot. The composite unique index enforces one item per (plan, day, meal).
type MealPlanItem struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_plan_items_slot,priority:1"`
	DayOfWeek  string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_meal_plan_items_slot,priority:2"`
	MealNumber int       `gorm:"not null;uniqueIndex:idx_meal_plan_items_slot,priority:3"`
	RecipeId   uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (MealPlanItem) TableName() string {
	return "meal_plan_items"
}

func (i *MealPlanItem) BeforeCreate(tx *gorm.DB) error {
	if i.Id == uuid.Nil {
		i.Id = uuid.New()
	}
	return nil
}
