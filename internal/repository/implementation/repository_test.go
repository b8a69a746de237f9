package implementation_test

import (
	"context"
	"testing"
	"time"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/model"
	"meal-planner-be/internal/repository/contract"
	"meal-planner-be/internal/repository/implementation"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/pkg/database"
	"meal-planner-be/pkg/tier"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	user := &entity.User{Email: uuid.NewString() + "@example.com", FullName: "Test User", Tier: tier.Free}
	require.NoError(t, implementation.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createRecipe(t *testing.T, db *gorm.DB, title string) *entity.Recipe {
	t.Helper()
	recipe := &entity.Recipe{Title: title, Source: "spoonacular", Calories: 400}
	require.NoError(t, implementation.NewRecipeRepository(db).Create(context.Background(), recipe))
	return recipe
}

func TestIngredientUpsertIsIdempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := implementation.NewIngredientRepository(db)

	first := entity.NewIngredient("Tomato", "Produce")
	require.NoError(t, repo.Upsert(ctx, first))
	require.NotEqual(t, uuid.Nil, first.Id)

	second := entity.NewIngredient("  tomato ", "Canned")
	require.NoError(t, repo.Upsert(ctx, second))

	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, "Produce", second.Category)

	var rows []model.Ingredient
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "tomato", rows[0].Name)
	assert.Equal(t, first.Id, rows[0].Id)
}

func TestPreferenceUpsertKeepsOneRow(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	user := createUser(t, db)
	repo := implementation.NewPreferenceRepository(db)

	target := 1800
	pref := &entity.Preference{UserId: user.Id, DietType: "vegan", CalorieTarget: &target, MealsPerDay: 2}
	require.NoError(t, repo.Upsert(ctx, pref))
	firstId := pref.Id

	updated := &entity.Preference{UserId: user.Id, DietType: "keto", MealsPerDay: 3}
	require.NoError(t, repo.Upsert(ctx, updated))

	assert.Equal(t, firstId, updated.Id)
	assert.Equal(t, "keto", updated.DietType)
	assert.Nil(t, updated.CalorieTarget)
	assert.Equal(t, 3, updated.MealsPerDay)

	var count int64
	require.NoError(t, db.Model(&model.Preference{}).Where("user_id = ?", user.Id).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindItemsWithRecipesOrdersByDayThenMeal(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	user := createUser(t, db)
	repo := implementation.NewMealPlanRepository(db)

	plan := &entity.MealPlan{UserId: user.Id, WeekStartDate: time.Now()}
	require.NoError(t, repo.Create(ctx, plan))

	soup := createRecipe(t, db, "Soup")
	salad := createRecipe(t, db, "Salad")

	inserted := []*entity.MealPlanItem{
		{PlanId: plan.Id, DayOfWeek: entity.Sunday, MealNumber: 1, RecipeId: soup.Id},
		{PlanId: plan.Id, DayOfWeek: entity.Monday, MealNumber: 2, RecipeId: salad.Id},
		{PlanId: plan.Id, DayOfWeek: entity.Wednesday, MealNumber: 1, RecipeId: soup.Id},
		{PlanId: plan.Id, DayOfWeek: entity.Monday, MealNumber: 1, RecipeId: soup.Id},
	}
	for _, item := range inserted {
		require.NoError(t, repo.CreateItem(ctx, item))
	}

	items, err := repo.FindItemsWithRecipes(ctx, plan.Id)
	require.NoError(t, err)
	require.Len(t, items, 4)

	got := make([]entity.Slot, len(items))
	for i, item := range items {
		got[i] = entity.Slot{Day: item.DayOfWeek, MealNumber: item.MealNumber}
		require.NotNil(t, item.Recipe)
	}
	assert.Equal(t, []entity.Slot{
		{Day: entity.Monday, MealNumber: 1},
		{Day: entity.Monday, MealNumber: 2},
		{Day: entity.Wednesday, MealNumber: 1},
		{Day: entity.Sunday, MealNumber: 1},
	}, got)
	assert.Equal(t, "Salad", items[1].Recipe.Title)

	empty, err := repo.FindItemsWithRecipes(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMealPlanItemSlotIsUnique(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	user := createUser(t, db)
	repo := implementation.NewMealPlanRepository(db)
	recipe := createRecipe(t, db, "Stew")

	plan := &entity.MealPlan{UserId: user.Id, WeekStartDate: time.Now()}
	require.NoError(t, repo.Create(ctx, plan))

	require.NoError(t, repo.CreateItem(ctx, &entity.MealPlanItem{PlanId: plan.Id, DayOfWeek: entity.Friday, MealNumber: 1, RecipeId: recipe.Id}))
	err := repo.CreateItem(ctx, &entity.MealPlanItem{PlanId: plan.Id, DayOfWeek: entity.Friday, MealNumber: 1, RecipeId: recipe.Id})
	assert.Error(t, err)
}

func TestFindIngredientDetailsJoinsCanonicalRows(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	recipes := implementation.NewRecipeRepository(db)
	ingredients := implementation.NewIngredientRepository(db)

	pasta := createRecipe(t, db, "Pasta")
	pizza := createRecipe(t, db, "Pizza")

	for _, r := range []*entity.Recipe{pasta, pizza} {
		tomato := entity.NewIngredient("Tomato", "Produce")
		require.NoError(t, ingredients.Upsert(ctx, tomato))
		require.NoError(t, recipes.AddIngredient(ctx, &entity.RecipeIngredient{
			RecipeId:     r.Id,
			IngredientId: tomato.Id,
			Amount:       2,
			Unit:         "pcs",
		}))
	}

	details, err := recipes.FindIngredientDetails(ctx, []uuid.UUID{pasta.Id, pizza.Id, pasta.Id})
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, details[0].IngredientId, details[1].IngredientId)
}

func TestShoppingListReplaceByPlan(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	user := createUser(t, db)
	plans := implementation.NewMealPlanRepository(db)
	lists := implementation.NewShoppingListRepository(db)
	ingredients := implementation.NewIngredientRepository(db)

	plan := &entity.MealPlan{UserId: user.Id, WeekStartDate: time.Now()}
	require.NoError(t, plans.Create(ctx, plan))
	rice := entity.NewIngredient("Rice", "Grains")
	require.NoError(t, ingredients.Upsert(ctx, rice))

	require.NoError(t, lists.CreateBatch(ctx, []*entity.ShoppingListItem{
		{PlanId: plan.Id, IngredientId: rice.Id, TotalAmount: 2, Unit: "cup"},
	}))
	require.NoError(t, lists.DeleteByPlan(ctx, plan.Id))
	require.NoError(t, lists.CreateBatch(ctx, []*entity.ShoppingListItem{
		{PlanId: plan.Id, IngredientId: rice.Id, TotalAmount: 3, Unit: "cup"},
	}))

	var rows []model.ShoppingListItem
	require.NoError(t, db.Where("plan_id = ?", plan.Id).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 3.0, rows[0].TotalAmount)

	require.NoError(t, lists.CreateBatch(ctx, nil))
}

func TestShoppingListRowIsUniquePerPlanIngredient(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	user := createUser(t, db)
	plans := implementation.NewMealPlanRepository(db)
	lists := implementation.NewShoppingListRepository(db)
	ingredients := implementation.NewIngredientRepository(db)

	plan := &entity.MealPlan{UserId: user.Id, WeekStartDate: time.Now()}
	require.NoError(t, plans.Create(ctx, plan))
	rice := entity.NewIngredient("Rice", "Grains")
	require.NoError(t, ingredients.Upsert(ctx, rice))

	require.NoError(t, lists.CreateBatch(ctx, []*entity.ShoppingListItem{
		{PlanId: plan.Id, IngredientId: rice.Id, TotalAmount: 2, Unit: "cup"},
	}))
	err := lists.CreateBatch(ctx, []*entity.ShoppingListItem{
		{PlanId: plan.Id, IngredientId: rice.Id, TotalAmount: 2, Unit: "cup"},
	})
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.ShoppingListItem{}).Where("plan_id = ?", plan.Id).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateItemRecipe(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	user := createUser(t, db)
	repo := implementation.NewMealPlanRepository(db)
	stew := createRecipe(t, db, "Stew")
	curry := createRecipe(t, db, "Curry")

	plan := &entity.MealPlan{UserId: user.Id, WeekStartDate: time.Now()}
	require.NoError(t, repo.Create(ctx, plan))
	item := &entity.MealPlanItem{PlanId: plan.Id, DayOfWeek: entity.Tuesday, MealNumber: 1, RecipeId: stew.Id}
	require.NoError(t, repo.CreateItem(ctx, item))

	require.NoError(t, repo.UpdateItemRecipe(ctx, item.Id, curry.Id))
	stored, err := repo.FindItem(ctx, specification.ByID{ID: item.Id})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, curry.Id, stored.RecipeId)

	err = repo.UpdateItemRecipe(ctx, uuid.New(), curry.Id)
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestRollbackToSavePointKeepsEarlierWrites(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	kept := entity.NewIngredient("Garlic", "Produce")
	require.NoError(t, uow.IngredientRepository().Upsert(ctx, kept))

	require.NoError(t, uow.SavePoint("ingredient_1"))
	dropped := entity.NewIngredient("Onion", "Produce")
	require.NoError(t, uow.IngredientRepository().Upsert(ctx, dropped))
	require.NoError(t, uow.RollbackTo("ingredient_1"))

	require.NoError(t, uow.Commit())

	var rows []model.Ingredient
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "garlic", rows[0].Name)
}

func TestSavePointWithoutTransactionFails(t *testing.T) {
	db := openDB(t)
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	assert.Error(t, uow.SavePoint("ingredient_0"))
	assert.Error(t, uow.RollbackTo("ingredient_0"))
}
