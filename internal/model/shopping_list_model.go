package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ShoppingListItem holds one cached row per (plan, ingredient).
type ShoppingListItem struct {
	Id           uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	PlanId       uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex:idx_shopping_list_items_plan_ingredient,priority:1"`
	IngredientId uuid.UUID                     `gorm:"type:uuid;not null;index;uniqueIndex:idx_shopping_list_items_plan_ingredient,priority:2"`
	TotalAmount  float64                       `gorm:"default:0"`
	Unit         string                        `gorm:"type:varchar(50)"`
	Notes        string                        `gorm:"type:text"`
	Quantities   datatypes.JSONSlice[Quantity] `json:"quantities"`
	CreatedAt    time.Time                     `gorm:"autoCreateTime"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}

func (s *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if s.Id == uuid.Nil {
		s.Id = uuid.New()
	}
	return nil
}
