package dto

import (
	"github.com/google/uuid"
)

type QuantityResponse struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type ShoppingListItemResponse struct {
	Name       string             `json:"name"`
	Amount     float64            `json:"amount"`
	Unit       string             `json:"unit"`
	Notes      string             `json:"notes,omitempty"`
	Quantities []QuantityResponse `json:"quantities"`
}

type ShoppingListAisleResponse struct {
	Aisle string                      `json:"aisle"`
	Items []*ShoppingListItemResponse `json:"items"`
}

type RecipeIngredientResponse struct {
	Name   string  `json:"name"`
	Aisle  string  `json:"aisle"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type ShoppingListRecipeResponse struct {
	RecipeId    string                      `json:"recipe_id"`
	Title       string                      `json:"title"`
	Ingredients []*RecipeIngredientResponse `json:"ingredients"`
}

type ShoppingListResponse struct {
	PlanId       uuid.UUID                     `json:"plan_id"`
	ShoppingList []*ShoppingListAisleResponse  `json:"shopping_list"`
	ByRecipe     []*ShoppingListRecipeResponse `json:"by_recipe"`
	TotalItems   int                           `json:"total_items"`
}

// ShoppingListRefreshMessage is queued after a plan's meals change.
type ShoppingListRefreshMessage struct {
	PlanId uuid.UUID `json:"plan_id"`
}
