package service

import (
	"context"
	"net/http"
	"testing"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/pkg/recipeprovider"
	"meal-planner-be/pkg/tier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeService_Search(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, tier.Free, nil)
	env.provider.searchResults = fakeRecipes(42, 2)

	res, err := env.recipes.Search(ctx, user.Id, &dto.RecipeSearchRequest{Query: "pasta", Diet: "vegan", Number: 2})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int64(42), res[0].Id)
	assert.Equal(t, 450.0, res[0].Calories)
	assert.Equal(t, "pasta", env.provider.lastSearch.Query)

	usage, err := env.quota.Peek(ctx, user.Id, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), usage.Used)
}

func TestRecipeService_RandomDefaultsToAWeek(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, tier.Free, nil)
	env.provider.randomResults = fakeRecipes(1, 7)

	res, err := env.recipes.Random(context.Background(), user.Id, &dto.RandomRecipeRequest{Diet: "vegetarian"})
	require.NoError(t, err)
	assert.Len(t, res, 7)
	assert.Equal(t, 7, env.provider.lastRandom.Number)
	assert.Equal(t, "vegetarian", env.provider.lastRandom.Tags)
}

func TestRecipeService_Detail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, tier.Premium, nil)
	env.provider.info[7] = &recipeprovider.RecipeInformation{
		Recipe: recipeprovider.Recipe{
			ID:    7,
			Title: "Shakshuka",
			ExtendedIngredients: []recipeprovider.ExtendedIngredient{
				ingredient("Egg", "", 4, ""),
			},
		},
		Instructions: "Simmer.",
	}

	res, err := env.recipes.Detail(ctx, user.Id, 7)
	require.NoError(t, err)
	assert.Equal(t, "Shakshuka", res.Title)
	require.Len(t, res.Ingredients, 1)
	assert.Equal(t, "Other", res.Ingredients[0].Aisle)

	_, err = env.recipes.Detail(ctx, user.Id, 8)
	requireAppError(t, err, apperror.CodeNotFound, http.StatusNotFound)

	env.provider.infoErr[9] = errProviderDown
	_, err = env.recipes.Detail(ctx, user.Id, 9)
	requireAppError(t, err, apperror.CodeUpstreamFailure, http.StatusInternalServerError)
}
