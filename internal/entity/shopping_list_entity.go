package entity

import (
	"time"

	"github.com/google/uuid"
)

type Quantity struct {
	Amount float64
	Unit   string
}

// ShoppingListItem is the cached aggregate for one ingredient of a plan.
// Rows are rebuilt on every shopping list fetch.
type ShoppingListItem struct {
	Id           uuid.UUID
	PlanId       uuid.UUID
	IngredientId uuid.UUID
	TotalAmount  float64
	Unit         string
	Notes        string
	Quantities   []Quantity
	CreatedAt    time.Time
}
