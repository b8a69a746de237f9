package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/model"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/pkg/database"
	"meal-planner-be/pkg/events"
	"meal-planner-be/pkg/quota"
	"meal-planner-be/pkg/recipeprovider"
	"meal-planner-be/pkg/tier"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeProvider struct {
	mu sync.Mutex

	searchResults []recipeprovider.Recipe
	searchErr     error
	lastSearch    recipeprovider.SearchParams

	randomResults []recipeprovider.Recipe
	randomErr     error
	lastRandom    recipeprovider.RandomParams

	info    map[int64]*recipeprovider.RecipeInformation
	infoErr map[int64]error

	searchCalls int
	randomCalls int
	infoCalls   int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		info:    make(map[int64]*recipeprovider.RecipeInformation),
		infoErr: make(map[int64]error),
	}
}

func (p *fakeProvider) Search(ctx context.Context, params recipeprovider.SearchParams) ([]recipeprovider.Recipe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchCalls++
	p.lastSearch = params
	if p.searchErr != nil {
		return nil, p.searchErr
	}
	return p.searchResults, nil
}

func (p *fakeProvider) Random(ctx context.Context, params recipeprovider.RandomParams) ([]recipeprovider.Recipe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.randomCalls++
	p.lastRandom = params
	if p.randomErr != nil {
		return nil, p.randomErr
	}
	return p.randomResults, nil
}

func (p *fakeProvider) Information(ctx context.Context, id int64) (*recipeprovider.RecipeInformation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.infoCalls++
	if err, ok := p.infoErr[id]; ok {
		return nil, err
	}
	if info, ok := p.info[id]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("recipe provider information: %w", recipeprovider.ErrNotFound)
}

type countingRecorder struct {
	mu          sync.Mutex
	generations map[string]int
	replaces    map[string]int
	partial     int
	lists       int
	quota       map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		generations: make(map[string]int),
		replaces:    make(map[string]int),
		quota:       make(map[string]int),
	}
}

func (r *countingRecorder) PlanGeneration(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations[outcome]++
}

func (r *countingRecorder) MealReplacement(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces[outcome]++
}

func (r *countingRecorder) PartialImportFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partial++
}

func (r *countingRecorder) ShoppingListBuilt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
}

func (r *countingRecorder) QuotaRejected(tierName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quota[tierName]++
}

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, event.EventType())
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

type recordingRefresh struct {
	mu    sync.Mutex
	plans []uuid.UUID
}

func (r *recordingRefresh) PublishShoppingListRefresh(ctx context.Context, planId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, planId)
	return nil
}

type testEnv struct {
	db        *gorm.DB
	factory   unitofwork.RepositoryFactory
	provider  *fakeProvider
	metrics   *countingRecorder
	publisher *recordingPublisher
	refresh   *recordingRefresh
	quota     *quota.Tracker

	tiers        TierService
	preferences  IPreferenceService
	importer     RecipeImporter
	mealPlans    IMealPlanService
	shoppingList IShoppingListService
	recipes      IRecipeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:", gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logger.NewNopLogger()
	env := &testEnv{
		db:        db,
		factory:   unitofwork.NewRepositoryFactory(db),
		provider:  newFakeProvider(),
		metrics:   newCountingRecorder(),
		publisher: &recordingPublisher{},
		refresh:   &recordingRefresh{},
		quota:     quota.NewTracker(nil, quota.NewMemoryCounter(), log),
	}

	env.tiers = NewTierService(env.factory, env.quota, env.publisher, env.metrics, log)
	env.preferences = NewPreferenceService(env.factory, log)
	env.importer = NewRecipeImporter(env.provider, env.metrics, log)
	env.mealPlans = NewMealPlanService(env.factory, env.tiers, env.provider, env.importer, env.publisher, env.refresh, env.metrics, log)
	env.shoppingList = NewShoppingListService(env.factory, env.tiers, env.publisher, env.metrics, log)
	env.recipes = NewRecipeService(env.tiers, env.provider, log)
	return env
}

func (e *testEnv) seedUser(t *testing.T, userTier tier.Tier, expiresAt *time.Time) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:         gofakeit.Email(),
		FullName:      gofakeit.Name(),
		Tier:          userTier,
		TierExpiresAt: expiresAt,
	}
	uow := e.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	return user
}

func (e *testEnv) seedPreference(t *testing.T, userId uuid.UUID, mealsPerDay int) {
	t.Helper()
	uow := e.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.PreferenceRepository().Upsert(context.Background(), &entity.Preference{
		UserId:      userId,
		DietType:    "vegetarian",
		Allergies:   "peanut, ,dairy",
		MealsPerDay: mealsPerDay,
	}))
}

func (e *testEnv) planCount(t *testing.T) int64 {
	t.Helper()
	uow := e.factory.NewUnitOfWork(context.Background())
	count, err := uow.MealPlanRepository().Count(context.Background())
	require.NoError(t, err)
	return count
}

// rowCount counts rows of the given model matching the optional condition.
func (e *testEnv) rowCount(t *testing.T, value interface{}, conds ...interface{}) int64 {
	t.Helper()
	query := e.db.Model(value)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	var count int64
	require.NoError(t, query.Count(&count).Error)
	return count
}

func (e *testEnv) shoppingRows(t *testing.T, planId uuid.UUID) []model.ShoppingListItem {
	t.Helper()
	var rows []model.ShoppingListItem
	require.NoError(t, e.db.Where("plan_id = ?", planId).Find(&rows).Error)
	return rows
}

// onCreate runs fn inside every insert into table until the test ends.
func (e *testEnv) onCreate(t *testing.T, table string, fn func(tx *gorm.DB)) {
	t.Helper()
	name := "test:on_create_" + table
	require.NoError(t, e.db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			fn(tx)
		}
	}))
	t.Cleanup(func() {
		_ = e.db.Callback().Create().Remove(name)
	})
}

// failCreates makes the nth insert into table fail with errInjected. Earlier
// and later inserts go through.
func (e *testEnv) failCreates(t *testing.T, table string, nth int) {
	t.Helper()
	seen := 0
	e.onCreate(t, table, func(tx *gorm.DB) {
		seen++
		if seen == nth {
			tx.AddError(errInjected)
		}
	})
}

// fakeRecipes returns n provider recipes with ids starting at firstId. Each
// carries its ingredient list so no detail fetch is needed.
func fakeRecipes(firstId int64, n int, ingredients ...recipeprovider.ExtendedIngredient) []recipeprovider.Recipe {
	recipes := make([]recipeprovider.Recipe, n)
	for i := range recipes {
		recipes[i] = recipeprovider.Recipe{
			ID:    firstId + int64(i),
			Title: fmt.Sprintf("%s %s %d", gofakeit.Adjective(), gofakeit.Noun(), i),
			Image: gofakeit.URL(),
			Nutrition: &recipeprovider.Nutrition{
				Nutrients: []recipeprovider.Nutrient{{Name: "Calories", Amount: 450, Unit: "kcal"}},
			},
			ExtendedIngredients: ingredients,
		}
	}
	return recipes
}

func ingredient(name, aisle string, amount float64, unit string) recipeprovider.ExtendedIngredient {
	return recipeprovider.ExtendedIngredient{
		Name:      name,
		NameClean: name,
		Aisle:     aisle,
		Amount:    amount,
		Unit:      unit,
	}
}

var (
	errProviderDown = errors.New("recipe provider search: status 500")
	errInjected     = errors.New("injected write failure")
)
