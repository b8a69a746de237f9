package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const RecipeSourceSpoonacular = "spoonacular"

// DefaultAisle is used when the provider gives no aisle for an ingredient.
const DefaultAisle = "Other"

// Recipe is the local copy of a provider recipe. Every import creates a new row.
type Recipe struct {
	Id         uuid.UUID
	ExternalId int64
	Title      string
	ImageURL   string
	Source     string
	Calories   float64
	DietType   string
	CreatedAt  time.Time
}

// Ingredient is keyed by its canonical name.
type Ingredient struct {
	Id          uuid.UUID
	Name        string // canonical, see NormalizeIngredientName
	DisplayName string
	Category    string
}

type RecipeIngredient struct {
	Id           uuid.UUID
	RecipeId     uuid.UUID
	IngredientId uuid.UUID
	Amount       float64
	Unit         string
}

// RecipeIngredientDetail is a recipe ingredient joined with its ingredient row.
type RecipeIngredientDetail struct {
	RecipeId     uuid.UUID
	IngredientId uuid.UUID
	Name         string
	DisplayName  string
	Category     string
	Amount       float64
	Unit         string
}

// NormalizeIngredientName is the single identity key for ingredients:
// lower-cased, trimmed, inner whitespace collapsed.
func NormalizeIngredientName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NewIngredient builds an ingredient from provider values, applying the
// canonical name and the default aisle.
func NewIngredient(name, category string) *Ingredient {
	display := strings.Join(strings.Fields(name), " ")
	if strings.TrimSpace(category) == "" {
		category = DefaultAisle
	}
	return &Ingredient{
		Name:        NormalizeIngredientName(name),
		DisplayName: display,
		Category:    category,
	}
}
