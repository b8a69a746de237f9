package shoppinglist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_SameUnitSums(t *testing.T) {
	list := Merge([]Line{
		{RecipeKey: "r1", RecipeTitle: "Pancakes", Name: "flour", Aisle: "Baking", Amount: 1, Unit: "cup"},
		{RecipeKey: "r2", RecipeTitle: "Bread", Name: "flour", DisplayName: "Flour", Aisle: "Baking", Amount: 2, Unit: "cup"},
	})

	require.Equal(t, 1, list.TotalItems)
	item := list.Items()[0]
	assert.Equal(t, 3.0, item.Amount)
	assert.Equal(t, "cup", item.Unit)
	assert.Empty(t, item.Notes)
	assert.False(t, item.MixedUnits())
}

func TestMerge_DifferentUnitsAreNotSummed(t *testing.T) {
	list := Merge([]Line{
		{RecipeKey: "r1", Name: "flour", Amount: 1, Unit: "cup"},
		{RecipeKey: "r2", Name: "flour", Amount: 200, Unit: "g"},
	})

	require.Equal(t, 1, list.TotalItems)
	item := list.Items()[0]
	assert.Equal(t, 1.0, item.Amount)
	assert.Equal(t, "cup", item.Unit)
	assert.Equal(t, "1 cup + 200 g", item.Notes)
	assert.True(t, item.MixedUnits())
}

func TestMerge_ThreeWayMismatchKeepsEveryQuantity(t *testing.T) {
	list := Merge([]Line{
		{RecipeKey: "r1", Name: "butter", Amount: 1, Unit: "cup"},
		{RecipeKey: "r2", Name: "butter", Amount: 200, Unit: "g"},
		{RecipeKey: "r3", Name: "butter", Amount: 2, Unit: "tbsp"},
		{RecipeKey: "r4", Name: "butter", Amount: 50, Unit: "G"},
	})

	item := list.Items()[0]
	assert.Equal(t, []Quantity{{1, "cup"}, {250, "g"}, {2, "tbsp"}}, item.Quantities)
	assert.Equal(t, "1 cup + 250 g + 2 tbsp", item.Notes)
}

func TestMerge_GroupsByAisle(t *testing.T) {
	list := Merge([]Line{
		{RecipeKey: "r1", Name: "tomato", Aisle: "Produce", Amount: 2},
		{RecipeKey: "r1", Name: "salt", Aisle: "", Amount: 1, Unit: "tsp"},
		{RecipeKey: "r2", Name: "basil", Aisle: "Produce", Amount: 5, Unit: "leaves"},
	})

	require.Len(t, list.ByAisle, 2)
	assert.Equal(t, "Other", list.ByAisle[0].Aisle)
	assert.Equal(t, "Produce", list.ByAisle[1].Aisle)
	assert.Equal(t, "basil", list.ByAisle[1].Items[0].Name)
	assert.Equal(t, "tomato", list.ByAisle[1].Items[1].Name)
	assert.Equal(t, 3, list.TotalItems)
}

func TestMerge_ByRecipeIsUnmerged(t *testing.T) {
	list := Merge([]Line{
		{RecipeKey: "r1", RecipeTitle: "A", Name: "egg", Amount: 2},
		{RecipeKey: "r2", RecipeTitle: "B", Name: "egg", Amount: 3},
		{RecipeKey: "r2", RecipeTitle: "B", Name: "milk", Amount: 1, Unit: "cup"},
	})

	require.Len(t, list.ByRecipe, 2)
	assert.Equal(t, "A", list.ByRecipe[0].RecipeTitle)
	assert.Len(t, list.ByRecipe[0].Lines, 1)
	assert.Len(t, list.ByRecipe[1].Lines, 2)
	assert.Equal(t, 2, list.TotalItems)
}

func TestMerge_KeysOnGivenName(t *testing.T) {
	list := Merge([]Line{
		{RecipeKey: "r1", Name: "olive oil", DisplayName: "Olive Oil", Amount: 2, Unit: "tbsp"},
		{RecipeKey: "r2", Name: "olive oil", DisplayName: "extra virgin olive oil", Amount: 1, Unit: "tbsp"},
		{RecipeKey: "r3", Name: "  ", DisplayName: "nameless", Amount: 9},
	})

	require.Equal(t, 1, list.TotalItems)
	item := list.Items()[0]
	assert.Equal(t, "olive oil", item.Name)
	assert.Equal(t, "Olive Oil", item.DisplayName)
	assert.Equal(t, 3.0, item.Amount)
	assert.Len(t, list.ByRecipe, 2)
}

func TestMerge_Empty(t *testing.T) {
	list := Merge(nil)
	assert.Equal(t, 0, list.TotalItems)
	assert.Empty(t, list.ByAisle)
	assert.Empty(t, list.ByRecipe)
}

func TestFormatText(t *testing.T) {
	list := Merge([]Line{
		{RecipeKey: "r1", Name: "flour", DisplayName: "Flour", Aisle: "Baking", Amount: 1.5, Unit: "cup"},
		{RecipeKey: "r1", Name: "egg", DisplayName: "Egg", Aisle: "Dairy", Amount: 2},
		{RecipeKey: "r2", Name: "flour", DisplayName: "flour", Aisle: "Baking", Amount: 100, Unit: "g"},
	})

	text := FormatText("Shopping list", list)
	assert.True(t, strings.HasPrefix(text, "Shopping list\n\nBaking:\n"))
	assert.Contains(t, text, "  - Flour (1.5 cup + 100 g)\n")
	assert.Contains(t, text, "Dairy:\n  - Egg 2\n")
	assert.Contains(t, text, "Total items: 2\n")

	assert.Equal(t, "No items.\n", FormatText("", Merge(nil)))
}
