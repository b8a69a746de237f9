package recipeprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipe_CaloriesTakesFirstNutrient(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
		want   float64
	}{
		{name: "no nutrition", recipe: Recipe{}, want: 0},
		{name: "empty nutrients", recipe: Recipe{Nutrition: &Nutrition{}}, want: 0},
		{
			name: "first entry wins",
			recipe: Recipe{Nutrition: &Nutrition{Nutrients: []Nutrient{
				{Name: "Fat", Amount: 20, Unit: "g"},
				{Name: "Calories", Amount: 410, Unit: "kcal"},
			}}},
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.recipe.Calories())
		})
	}
}
