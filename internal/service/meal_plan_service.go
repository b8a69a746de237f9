package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/repository/contract"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/pkg/events"
	"meal-planner-be/pkg/recipeprovider"
	"meal-planner-be/pkg/tier"

	"github.com/google/uuid"
)

type IMealPlanService interface {
	Generate(ctx context.Context, userId uuid.UUID) (*dto.GenerateMealPlanResponse, error)
	// GetLatestByUser returns nil when the user has no plan.
	GetLatestByUser(ctx context.Context, requesterId uuid.UUID, userId uuid.UUID) (*dto.MealPlanResponse, error)
	ReplaceItem(ctx context.Context, requesterId uuid.UUID, itemId uuid.UUID) (*dto.ReplaceMealResponse, error)
	Delete(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) error
}

type mealPlanService struct {
	uowFactory  unitofwork.RepositoryFactory
	tierService TierService
	provider    recipeprovider.Provider
	importer    RecipeImporter
	publisher   events.Publisher
	refresh     IPublisherService
	metrics     MetricsRecorder
	logger      logger.ILogger
	now         func() time.Time
}

func NewMealPlanService(
	uowFactory unitofwork.RepositoryFactory,
	tierService TierService,
	provider recipeprovider.Provider,
	importer RecipeImporter,
	publisher events.Publisher,
	refresh IPublisherService,
	metrics MetricsRecorder,
	log logger.ILogger,
) IMealPlanService {
	return &mealPlanService{
		uowFactory:  uowFactory,
		tierService: tierService,
		provider:    provider,
		importer:    importer,
		publisher:   publisher,
		refresh:     refresh,
		metrics:     metrics,
		logger:      log,
		now:         time.Now,
	}
}

func (s *mealPlanService) Generate(ctx context.Context, userId uuid.UUID) (*dto.GenerateMealPlanResponse, error) {
	user, err := s.tierService.ResolveEffectiveTier(ctx, userId)
	if err != nil {
		return nil, err
	}
	limits := tier.LimitsFor(user.Tier)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Plan cap
	planCount, err := uow.MealPlanRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to count meal plans", err)
	}
	if limits.PlanCapReached(planCount) {
		s.metrics.PlanGeneration(OutcomeRejected)
		return nil, planCapError(user.Tier, limits)
	}

	// 2. Preferences
	pref, err := uow.PreferenceRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load preferences", err)
	}
	if pref == nil {
		s.metrics.PlanGeneration(OutcomeRejected)
		return nil, apperror.PolicyRejection("Please set your preferences first")
	}

	// 3. Meals per day
	mealsPerDay := pref.EffectiveMealsPerDay()
	if mealsPerDay > limits.MaxMealsPerDay() {
		s.metrics.PlanGeneration(OutcomeRejected)
		return nil, apperror.UpgradeRequired(fmt.Sprintf(
			"Your %s tier allows up to %d meals per day. Upgrade for more!",
			user.Tier, limits.MaxMealsPerDay(),
		))
	}

	if err := s.tierService.ChargeProviderCall(ctx, user); err != nil {
		s.metrics.PlanGeneration(OutcomeRejected)
		return nil, err
	}

	slots := entity.Slots(mealsPerDay)
	totalMeals := len(slots)

	params := recipeprovider.SearchParams{
		Diet:         pref.DietType,
		Intolerances: pref.Intolerances(),
		Number:       totalMeals,
	}
	if minCal, maxCal, ok := pref.CalorieWindow(); ok {
		params.MinCalories = &minCal
		params.MaxCalories = &maxCal
	}

	candidates, err := s.provider.Search(ctx, params)
	if err != nil {
		s.metrics.PlanGeneration(OutcomeUpstream)
		s.logger.Error("MEALPLAN", "Recipe search failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil, apperror.Upstream("Failed to generate meal plan", err)
	}
	if len(candidates) < totalMeals {
		s.metrics.PlanGeneration(OutcomeNotEnough)
		s.logger.Warn("MEALPLAN", "Not enough recipes", map[string]interface{}{
			"user_id":  userId.String(),
			"needed":   totalMeals,
			"returned": len(candidates),
		})
		notEnough := apperror.Upstream("Not enough recipes found. Try adjusting your preferences.", nil)
		notEnough.Status = http.StatusBadRequest
		return nil, notEnough
	}
	candidates = candidates[:totalMeals]

	// Provider calls happen before the transaction opens.
	details := s.importer.FetchDetails(ctx, candidates)

	plan, err := s.persistPlan(ctx, user, limits, pref.DietType, slots, candidates, details)
	if err != nil {
		if _, ok := apperror.As(err); !ok {
			s.metrics.PlanGeneration(OutcomeFailed)
			s.logger.Error("MEALPLAN", "Failed to store meal plan", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
			return nil, apperror.Internal("Failed to generate meal plan", err)
		}
		s.metrics.PlanGeneration(OutcomeRejected)
		return nil, err
	}

	s.metrics.PlanGeneration(OutcomeSuccess)
	s.logger.Info("MEALPLAN", "Meal plan generated", map[string]interface{}{
		"user_id": userId.String(),
		"plan_id": plan.Id.String(),
		"meals":   totalMeals,
	})
	s.afterChange(ctx, plan.Id, events.NewMealPlanGenerated(userId, plan.Id, totalMeals))

	return &dto.GenerateMealPlanResponse{
		MealPlan:    toMealPlanResponse(plan),
		MealsPerDay: mealsPerDay,
		TotalMeals:  totalMeals,
	}, nil
}

// persistPlan writes the plan, the imported recipes and one item per slot in
// a single transaction. The user row is locked and the plan cap checked again
// so concurrent generations cannot both pass it.
func (s *mealPlanService) persistPlan(
	ctx context.Context,
	user *entity.User,
	limits tier.Limits,
	dietType string,
	slots []entity.Slot,
	candidates []recipeprovider.Recipe,
	details map[int64]*recipeprovider.RecipeInformation,
) (*entity.MealPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	locked, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, apperror.NotFound("User not found")
	}

	planCount, err := uow.MealPlanRepository().Count(ctx, specification.UserOwnedBy{UserID: user.Id})
	if err != nil {
		return nil, err
	}
	if limits.PlanCapReached(planCount) {
		return nil, planCapError(user.Tier, limits)
	}

	plan := &entity.MealPlan{
		UserId:        user.Id,
		WeekStartDate: s.now(),
	}
	if err := uow.MealPlanRepository().Create(ctx, plan); err != nil {
		return nil, err
	}

	plan.Items = make([]*entity.MealPlanItem, 0, len(slots))
	for i, slot := range slots {
		candidate := candidates[i]
		recipe, err := s.importer.Import(ctx, uow, candidate, dietType, details[candidate.ID])
		if err != nil {
			return nil, err
		}

		item := &entity.MealPlanItem{
			PlanId:     plan.Id,
			DayOfWeek:  slot.Day,
			MealNumber: slot.MealNumber,
			RecipeId:   recipe.Id,
			Recipe:     recipe,
		}
		if err := uow.MealPlanRepository().CreateItem(ctx, item); err != nil {
			return nil, err
		}
		plan.Items = append(plan.Items, item)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) GetLatestByUser(ctx context.Context, requesterId uuid.UUID, userId uuid.UUID) (*dto.MealPlanResponse, error) {
	if requesterId != userId {
		return nil, apperror.Forbidden("Access denied")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.MealPlanRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Latest{Field: "week_start_date"},
	)
	if err != nil {
		return nil, apperror.Internal("Failed to load meal plan", err)
	}
	if plan == nil {
		return nil, nil
	}

	items, err := uow.MealPlanRepository().FindItemsWithRecipes(ctx, plan.Id)
	if err != nil {
		return nil, apperror.Internal("Failed to load meal plan items", err)
	}
	plan.Items = items

	return toMealPlanResponse(plan), nil
}

func (s *mealPlanService) ReplaceItem(ctx context.Context, requesterId uuid.UUID, itemId uuid.UUID) (*dto.ReplaceMealResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.MealPlanRepository().FindItem(ctx, specification.ByID{ID: itemId})
	if err != nil {
		return nil, apperror.Internal("Failed to load meal", err)
	}
	if item == nil {
		return nil, apperror.NotFound("Meal not found")
	}
	plan, err := uow.MealPlanRepository().FindOne(ctx, specification.ByID{ID: item.PlanId})
	if err != nil {
		return nil, apperror.Internal("Failed to load meal plan", err)
	}
	if plan == nil {
		return nil, apperror.NotFound("Meal not found")
	}
	if plan.UserId != requesterId {
		return nil, apperror.Forbidden("Access denied")
	}

	user, err := s.tierService.ResolveEffectiveTier(ctx, requesterId)
	if err != nil {
		return nil, err
	}
	if err := s.tierService.ChargeProviderCall(ctx, user); err != nil {
		s.metrics.MealReplacement(OutcomeRejected)
		return nil, err
	}

	pref, err := uow.PreferenceRepository().FindOne(ctx, specification.UserOwnedBy{UserID: requesterId})
	if err != nil {
		return nil, apperror.Internal("Failed to load preferences", err)
	}
	params := recipeprovider.RandomParams{Number: 1}
	dietType := ""
	if pref != nil {
		dietType = pref.DietType
		params.Diet = pref.DietType
		params.Intolerances = pref.Intolerances()
	}

	recipes, err := s.provider.Random(ctx, params)
	if err == nil && len(recipes) == 0 {
		err = fmt.Errorf("provider returned no recipe")
	}
	if err != nil {
		s.metrics.MealReplacement(OutcomeUpstream)
		s.logger.Error("MEALPLAN", "Random recipe failed", map[string]interface{}{
			"item_id": itemId.String(),
			"error":   err.Error(),
		})
		return nil, apperror.Upstream("Failed to replace meal", err)
	}
	replacement := recipes[0]
	details := s.importer.FetchDetails(ctx, recipes[:1])

	recipe, err := s.swapRecipe(ctx, item, replacement, dietType, details[replacement.ID])
	if errors.Is(err, contract.ErrNotFound) {
		// The item went away between the ownership check and the swap.
		s.metrics.MealReplacement(OutcomeFailed)
		return nil, apperror.NotFound("Meal not found")
	}
	if err != nil {
		s.metrics.MealReplacement(OutcomeFailed)
		s.logger.Error("MEALPLAN", "Failed to store replacement", map[string]interface{}{
			"item_id": itemId.String(),
			"error":   err.Error(),
		})
		return nil, apperror.Internal("Failed to replace meal", err)
	}
	item.RecipeId = recipe.Id
	item.Recipe = recipe

	s.metrics.MealReplacement(OutcomeSuccess)
	s.logger.Info("MEALPLAN", "Meal replaced", map[string]interface{}{
		"item_id":   itemId.String(),
		"recipe_id": recipe.Id.String(),
		"title":     recipe.Title,
	})
	s.afterChange(ctx, plan.Id, events.NewMealReplaced(requesterId, plan.Id, item.Id, recipe.Id))

	return &dto.ReplaceMealResponse{Item: toMealPlanItemResponse(item)}, nil
}

func (s *mealPlanService) swapRecipe(
	ctx context.Context,
	item *entity.MealPlanItem,
	replacement recipeprovider.Recipe,
	dietType string,
	details *recipeprovider.RecipeInformation,
) (*entity.Recipe, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	recipe, err := s.importer.Import(ctx, uow, replacement, dietType, details)
	if err != nil {
		return nil, err
	}
	if err := uow.MealPlanRepository().UpdateItemRecipe(ctx, item.Id, recipe.Id); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *mealPlanService) Delete(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.MealPlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return apperror.Internal("Failed to load meal plan", err)
	}
	if plan == nil {
		return apperror.NotFound("Meal plan not found")
	}
	if plan.UserId != requesterId {
		return apperror.Forbidden("Access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("Failed to delete meal plan", err)
	}
	defer uow.Rollback()

	if err := uow.ShoppingListRepository().DeleteByPlan(ctx, planId); err != nil {
		return apperror.Internal("Failed to delete meal plan", err)
	}
	if err := uow.MealPlanRepository().DeleteItemsByPlan(ctx, planId); err != nil {
		return apperror.Internal("Failed to delete meal plan", err)
	}
	if err := uow.MealPlanRepository().Delete(ctx, planId); err != nil {
		return apperror.Internal("Failed to delete meal plan", err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("Failed to delete meal plan", err)
	}

	s.logger.Info("MEALPLAN", "Meal plan deleted", map[string]interface{}{
		"user_id": requesterId.String(),
		"plan_id": planId.String(),
	})
	if err := s.publisher.Publish(ctx, events.NewMealPlanDeleted(requesterId, planId)); err != nil {
		s.logger.Warn("MEALPLAN", "Failed to publish event", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

// afterChange publishes the domain event and queues a shopping list rebuild.
// Neither failure is reported to the caller.
func (s *mealPlanService) afterChange(ctx context.Context, planId uuid.UUID, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("MEALPLAN", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
	if err := s.refresh.PublishShoppingListRefresh(ctx, planId); err != nil {
		s.logger.Warn("MEALPLAN", "Failed to queue shopping list refresh", map[string]interface{}{
			"plan_id": planId.String(),
			"error":   err.Error(),
		})
	}
}

func planCapError(t tier.Tier, limits tier.Limits) error {
	return apperror.UpgradeRequired(fmt.Sprintf(
		"Your %s tier is limited to %d meal plans. Upgrade for more!",
		t, limits.MaxPlans,
	))
}

func toMealPlanResponse(plan *entity.MealPlan) *dto.MealPlanResponse {
	items := make([]*dto.MealPlanItemResponse, 0, len(plan.Items))
	for _, item := range plan.Items {
		items = append(items, toMealPlanItemResponse(item))
	}
	return &dto.MealPlanResponse{
		Id:            plan.Id,
		UserId:        plan.UserId,
		WeekStartDate: plan.WeekStartDate,
		CreatedAt:     plan.CreatedAt,
		Items:         items,
	}
}

func toMealPlanItemResponse(item *entity.MealPlanItem) *dto.MealPlanItemResponse {
	res := &dto.MealPlanItemResponse{
		Id:         item.Id,
		PlanId:     item.PlanId,
		DayOfWeek:  string(item.DayOfWeek),
		MealNumber: item.MealNumber,
		RecipeId:   item.RecipeId,
	}
	if item.Recipe != nil {
		res.Title = item.Recipe.Title
		res.ImageURL = item.Recipe.ImageURL
		res.Calories = item.Recipe.Calories
	}
	return res
}
