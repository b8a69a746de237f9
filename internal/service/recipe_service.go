package service

import (
	"context"
	"errors"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/pkg/recipeprovider"

	"github.com/google/uuid"
)

const defaultRandomRecipes = 7

// IRecipeService passes recipe browsing through to the provider. Every call
// counts against the caller's daily quota.
type IRecipeService interface {
	Search(ctx context.Context, userId uuid.UUID, req *dto.RecipeSearchRequest) ([]*dto.RecipeSummaryResponse, error)
	Random(ctx context.Context, userId uuid.UUID, req *dto.RandomRecipeRequest) ([]*dto.RecipeSummaryResponse, error)
	Detail(ctx context.Context, userId uuid.UUID, externalId int64) (*dto.RecipeDetailResponse, error)
}

type recipeService struct {
	tierService TierService
	provider    recipeprovider.Provider
	logger      logger.ILogger
}

func NewRecipeService(tierService TierService, provider recipeprovider.Provider, log logger.ILogger) IRecipeService {
	return &recipeService{
		tierService: tierService,
		provider:    provider,
		logger:      log,
	}
}

func (s *recipeService) charge(ctx context.Context, userId uuid.UUID) error {
	user, err := s.tierService.ResolveEffectiveTier(ctx, userId)
	if err != nil {
		return err
	}
	return s.tierService.ChargeProviderCall(ctx, user)
}

func (s *recipeService) Search(ctx context.Context, userId uuid.UUID, req *dto.RecipeSearchRequest) ([]*dto.RecipeSummaryResponse, error) {
	if err := s.charge(ctx, userId); err != nil {
		return nil, err
	}

	recipes, err := s.provider.Search(ctx, recipeprovider.SearchParams{
		Query:        req.Query,
		Diet:         req.Diet,
		Intolerances: req.Intolerances,
		Number:       req.Number,
	})
	if err != nil {
		s.logger.Error("RECIPE", "Recipe search failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Upstream("Failed to search recipes", err)
	}
	return toRecipeSummaries(recipes), nil
}

func (s *recipeService) Random(ctx context.Context, userId uuid.UUID, req *dto.RandomRecipeRequest) ([]*dto.RecipeSummaryResponse, error) {
	if err := s.charge(ctx, userId); err != nil {
		return nil, err
	}

	number := req.Number
	if number <= 0 {
		number = defaultRandomRecipes
	}
	recipes, err := s.provider.Random(ctx, recipeprovider.RandomParams{
		Tags:   req.Diet,
		Number: number,
	})
	if err != nil {
		s.logger.Error("RECIPE", "Random recipes failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Upstream("Failed to fetch random recipes", err)
	}
	return toRecipeSummaries(recipes), nil
}

func (s *recipeService) Detail(ctx context.Context, userId uuid.UUID, externalId int64) (*dto.RecipeDetailResponse, error) {
	if err := s.charge(ctx, userId); err != nil {
		return nil, err
	}

	info, err := s.provider.Information(ctx, externalId)
	if err != nil {
		if errors.Is(err, recipeprovider.ErrNotFound) {
			return nil, apperror.NotFound("Recipe not found")
		}
		s.logger.Error("RECIPE", "Recipe detail failed", map[string]interface{}{
			"id":    externalId,
			"error": err.Error(),
		})
		return nil, apperror.Upstream("Failed to fetch recipe", err)
	}

	ingredients := make([]*dto.RecipeIngredientDetailResponse, 0, len(info.ExtendedIngredients))
	for _, ing := range info.ExtendedIngredients {
		aisle := ing.Aisle
		if aisle == "" {
			aisle = "Other"
		}
		ingredients = append(ingredients, &dto.RecipeIngredientDetailResponse{
			Name:   ing.PreferredName(),
			Aisle:  aisle,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}

	return &dto.RecipeDetailResponse{
		RecipeSummaryResponse: *toRecipeSummary(&info.Recipe),
		Instructions:          info.Instructions,
		Summary:               info.Summary,
		Ingredients:           ingredients,
	}, nil
}

func toRecipeSummary(r *recipeprovider.Recipe) *dto.RecipeSummaryResponse {
	return &dto.RecipeSummaryResponse{
		Id:             r.ID,
		Title:          r.Title,
		Image:          r.Image,
		Calories:       r.Calories(),
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       r.Servings,
		SourceURL:      r.SourceURL,
	}
}

func toRecipeSummaries(recipes []recipeprovider.Recipe) []*dto.RecipeSummaryResponse {
	result := make([]*dto.RecipeSummaryResponse, 0, len(recipes))
	for i := range recipes {
		result = append(result, toRecipeSummary(&recipes[i]))
	}
	return result
}
