package service

import (
	"context"
	"fmt"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/pkg/recipeprovider"
)

// RecipeImporter copies provider recipes into the local store. Ingredient
// detail is best-effort: a failed fetch or a failed ingredient row is logged
// and skipped, so an imported recipe may have no ingredients.
type RecipeImporter interface {
	// FetchDetails loads ingredient detail for each candidate, one request at
	// a time. Candidates whose fetch failed are missing from the result.
	FetchDetails(ctx context.Context, candidates []recipeprovider.Recipe) map[int64]*recipeprovider.RecipeInformation

	// Import writes the recipe, its ingredients and links through uow.
	// Only the recipe insert can fail the import.
	Import(ctx context.Context, uow unitofwork.UnitOfWork, summary recipeprovider.Recipe, dietType string, details *recipeprovider.RecipeInformation) (*entity.Recipe, error)
}

type recipeImporter struct {
	provider recipeprovider.Provider
	metrics  MetricsRecorder
	logger   logger.ILogger
}

func NewRecipeImporter(provider recipeprovider.Provider, metrics MetricsRecorder, log logger.ILogger) RecipeImporter {
	return &recipeImporter{
		provider: provider,
		metrics:  metrics,
		logger:   log,
	}
}

func (s *recipeImporter) FetchDetails(ctx context.Context, candidates []recipeprovider.Recipe) map[int64]*recipeprovider.RecipeInformation {
	result := make(map[int64]*recipeprovider.RecipeInformation, len(candidates))
	for _, c := range candidates {
		if _, done := result[c.ID]; done {
			continue
		}
		if len(c.ExtendedIngredients) > 0 {
			result[c.ID] = &recipeprovider.RecipeInformation{Recipe: c}
			continue
		}

		info, err := s.provider.Information(ctx, c.ID)
		if err != nil {
			s.metrics.PartialImportFailure()
			s.logger.Warn("IMPORTER", "Could not fetch ingredients", map[string]interface{}{
				"recipe": c.Title,
				"id":     c.ID,
				"error":  err.Error(),
			})
			if ctx.Err() != nil {
				return result
			}
			continue
		}
		result[c.ID] = info
	}
	return result
}

func (s *recipeImporter) Import(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	summary recipeprovider.Recipe,
	dietType string,
	details *recipeprovider.RecipeInformation,
) (*entity.Recipe, error) {
	recipe := &entity.Recipe{
		ExternalId: summary.ID,
		Title:      summary.Title,
		ImageURL:   summary.Image,
		Source:     entity.RecipeSourceSpoonacular,
		Calories:   summary.Calories(),
		DietType:   dietType,
	}
	if err := uow.RecipeRepository().Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe %q: %w", summary.Title, err)
	}

	if details == nil {
		return recipe, nil
	}

	stored := 0
	for i, ing := range details.ExtendedIngredients {
		savepoint := fmt.Sprintf("ingredient_%d", i)
		guarded := uow.SavePoint(savepoint) == nil

		if err := s.importIngredient(ctx, uow, recipe, ing); err != nil {
			if guarded {
				if rbErr := uow.RollbackTo(savepoint); rbErr != nil {
					return nil, fmt.Errorf("rollback ingredient %q: %w", ing.PreferredName(), rbErr)
				}
			}
			s.metrics.PartialImportFailure()
			s.logger.Warn("IMPORTER", "Error storing ingredient", map[string]interface{}{
				"recipe":     recipe.Title,
				"ingredient": ing.PreferredName(),
				"error":      err.Error(),
			})
			continue
		}
		stored++
	}

	s.logger.Debug("IMPORTER", "Stored ingredients", map[string]interface{}{
		"recipe": recipe.Title,
		"count":  stored,
	})
	return recipe, nil
}

func (s *recipeImporter) importIngredient(ctx context.Context, uow unitofwork.UnitOfWork, recipe *entity.Recipe, ing recipeprovider.ExtendedIngredient) error {
	ingredient := entity.NewIngredient(ing.PreferredName(), ing.Aisle)
	if ingredient.Name == "" {
		return fmt.Errorf("ingredient without name")
	}
	if err := uow.IngredientRepository().Upsert(ctx, ingredient); err != nil {
		return err
	}
	return uow.RecipeRepository().AddIngredient(ctx, &entity.RecipeIngredient{
		RecipeId:     recipe.Id,
		IngredientId: ingredient.Id,
		Amount:       ing.Amount,
		Unit:         ing.Unit,
	})
}
