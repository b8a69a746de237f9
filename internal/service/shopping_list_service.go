package service

import (
	"context"
	"sort"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/pkg/events"
	"meal-planner-be/pkg/shoppinglist"
	"meal-planner-be/pkg/tier"

	"github.com/google/uuid"
)

type IShoppingListService interface {
	Build(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) (*dto.ShoppingListResponse, error)
	Export(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) (string, error)

	// Refresh rebuilds the cached rows of a plan without an ownership check.
	// Used by the background consumer.
	Refresh(ctx context.Context, planId uuid.UUID) error
}

type shoppingListService struct {
	uowFactory  unitofwork.RepositoryFactory
	tierService TierService
	publisher   events.Publisher
	metrics     MetricsRecorder
	logger      logger.ILogger
}

func NewShoppingListService(
	uowFactory unitofwork.RepositoryFactory,
	tierService TierService,
	publisher events.Publisher,
	metrics MetricsRecorder,
	log logger.ILogger,
) IShoppingListService {
	return &shoppingListService{
		uowFactory:  uowFactory,
		tierService: tierService,
		publisher:   publisher,
		metrics:     metrics,
		logger:      log,
	}
}

func (s *shoppingListService) Build(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) (*dto.ShoppingListResponse, error) {
	if err := s.checkOwnership(ctx, requesterId, planId); err != nil {
		return nil, err
	}

	list, err := s.rebuild(ctx, planId)
	if err != nil {
		return nil, apperror.Internal("Failed to build shopping list", err)
	}
	return toShoppingListResponse(planId, list), nil
}

func (s *shoppingListService) Export(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) (string, error) {
	user, err := s.tierService.ResolveEffectiveTier(ctx, requesterId)
	if err != nil {
		return "", err
	}
	if !tier.LimitsFor(user.Tier).CanExport {
		return "", apperror.UpgradeRequired("Shopping list export is not available on the free tier. Upgrade to export!")
	}

	if err := s.checkOwnership(ctx, requesterId, planId); err != nil {
		return "", err
	}

	list, err := s.rebuild(ctx, planId)
	if err != nil {
		return "", apperror.Internal("Failed to build shopping list", err)
	}
	return shoppinglist.FormatText("Shopping List", list), nil
}

func (s *shoppingListService) Refresh(ctx context.Context, planId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.MealPlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return err
	}
	if plan == nil {
		// Deleted before the refresh ran.
		return nil
	}
	_, err = s.rebuild(ctx, planId)
	return err
}

func (s *shoppingListService) checkOwnership(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) error {
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
	return nil
}

// rebuild merges the plan's stored ingredients and replaces the cached
// shopping list rows with the result.
func (s *shoppingListService) rebuild(ctx context.Context, planId uuid.UUID) (*shoppinglist.List, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Slot order (Mon..Sun, then meal number) decides which recipe is seen
	// first for each ingredient.
	items, err := uow.MealPlanRepository().FindItemsWithRecipes(ctx, planId)
	if err != nil {
		return nil, err
	}

	position := make(map[uuid.UUID]int, len(items))
	titles := make(map[uuid.UUID]string, len(items))
	recipeIds := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := position[item.RecipeId]; ok {
			continue
		}
		position[item.RecipeId] = len(recipeIds)
		recipeIds = append(recipeIds, item.RecipeId)
		if item.Recipe != nil {
			titles[item.RecipeId] = item.Recipe.Title
		}
	}

	details, err := uow.RecipeRepository().FindIngredientDetails(ctx, recipeIds)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(details, func(i, j int) bool {
		return position[details[i].RecipeId] < position[details[j].RecipeId]
	})

	withIngredients := make(map[uuid.UUID]bool, len(recipeIds))
	lines := make([]shoppinglist.Line, 0, len(details))
	for _, d := range details {
		withIngredients[d.RecipeId] = true
		lines = append(lines, shoppinglist.Line{
			RecipeKey:   d.RecipeId.String(),
			RecipeTitle: titles[d.RecipeId],
			Name:        d.Name,
			DisplayName: d.DisplayName,
			Aisle:       d.Category,
			Amount:      d.Amount,
			Unit:        d.Unit,
		})
	}
	for _, id := range recipeIds {
		if !withIngredients[id] {
			s.logger.Debug("SHOPPING", "Recipe has no stored ingredients", map[string]interface{}{
				"plan_id":   planId.String(),
				"recipe_id": id.String(),
				"title":     titles[id],
			})
		}
	}

	list := shoppinglist.Merge(lines)

	if err := s.persist(ctx, planId, list); err != nil {
		return nil, err
	}

	s.metrics.ShoppingListBuilt()
	s.logger.Info("SHOPPING", "Shopping list built", map[string]interface{}{
		"plan_id":     planId.String(),
		"total_items": list.TotalItems,
	})
	if err := s.publisher.Publish(ctx, events.NewShoppingListBuilt(planId, list.TotalItems)); err != nil {
		s.logger.Warn("SHOPPING", "Failed to publish event", map[string]interface{}{"error": err.Error()})
	}
	return list, nil
}

func (s *shoppingListService) persist(ctx context.Context, planId uuid.UUID, list *shoppinglist.List) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Concurrent rebuilds of one plan queue on the plan row so each sees the
	// rows the previous one committed.
	plan, err := uow.MealPlanRepository().FindOne(ctx, specification.ByID{ID: planId}, specification.ForUpdate{})
	if err != nil {
		return err
	}
	if plan == nil {
		return nil
	}

	if err := uow.ShoppingListRepository().DeleteByPlan(ctx, planId); err != nil {
		return err
	}

	items := list.Items()
	rows := make([]*entity.ShoppingListItem, 0, len(items))
	for _, item := range items {
		ingredient := entity.NewIngredient(item.DisplayName, item.Aisle)
		if err := uow.IngredientRepository().Upsert(ctx, ingredient); err != nil {
			return err
		}

		quantities := make([]entity.Quantity, len(item.Quantities))
		for i, q := range item.Quantities {
			quantities[i] = entity.Quantity{Amount: q.Amount, Unit: q.Unit}
		}
		rows = append(rows, &entity.ShoppingListItem{
			PlanId:       planId,
			IngredientId: ingredient.Id,
			TotalAmount:  item.Amount,
			Unit:         item.Unit,
			Notes:        item.Notes,
			Quantities:   quantities,
		})
	}
	if err := uow.ShoppingListRepository().CreateBatch(ctx, rows); err != nil {
		return err
	}

	return uow.Commit()
}

func toShoppingListResponse(planId uuid.UUID, list *shoppinglist.List) *dto.ShoppingListResponse {
	aisles := make([]*dto.ShoppingListAisleResponse, 0, len(list.ByAisle))
	for _, g := range list.ByAisle {
		items := make([]*dto.ShoppingListItemResponse, 0, len(g.Items))
		for _, item := range g.Items {
			quantities := make([]dto.QuantityResponse, len(item.Quantities))
			for i, q := range item.Quantities {
				quantities[i] = dto.QuantityResponse{Amount: q.Amount, Unit: q.Unit}
			}
			items = append(items, &dto.ShoppingListItemResponse{
				Name:       item.DisplayName,
				Amount:     item.Amount,
				Unit:       item.Unit,
				Notes:      item.Notes,
				Quantities: quantities,
			})
		}
		aisles = append(aisles, &dto.ShoppingListAisleResponse{Aisle: g.Aisle, Items: items})
	}

	recipes := make([]*dto.ShoppingListRecipeResponse, 0, len(list.ByRecipe))
	for _, g := range list.ByRecipe {
		ingredients := make([]*dto.RecipeIngredientResponse, 0, len(g.Lines))
		for _, line := range g.Lines {
			name := line.DisplayName
			if name == "" {
				name = line.Name
			}
			ingredients = append(ingredients, &dto.RecipeIngredientResponse{
				Name:   name,
				Aisle:  line.Aisle,
				Amount: line.Amount,
				Unit:   line.Unit,
			})
		}
		recipes = append(recipes, &dto.ShoppingListRecipeResponse{
			RecipeId:    g.RecipeKey,
			Title:       g.RecipeTitle,
			Ingredients: ingredients,
		})
	}

	return &dto.ShoppingListResponse{
		PlanId:       planId,
		ShoppingList: aisles,
		ByRecipe:     recipes,
		TotalItems:   list.TotalItems,
	}
}
