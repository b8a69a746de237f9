package implementation

import (
	"context"
	"errors"
	"sort"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/mapper"
	"meal-planner-be/internal/model"
	"meal-planner-be/internal/repository/contract"
	"meal-planner-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlanRepositoryImpl struct {
	db           *gorm.DB
	mapper       *mapper.MealPlanMapper
	recipeMapper *mapper.RecipeMapper
}

func NewMealPlanRepository(db *gorm.DB) contract.MealPlanRepository {
	return &MealPlanRepositoryImpl{
		db:           db,
		mapper:       mapper.NewMealPlanMapper(),
		recipeMapper: mapper.NewRecipeMapper(),
	}
}

func (r *MealPlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MealPlanRepositoryImpl) Create(ctx context.Context, plan *entity.MealPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	items := plan.Items
	*plan = *r.mapper.ToEntity(m)
	plan.Items = items
	return nil
}

func (r *MealPlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MealPlan{}).Error
}

func (r *MealPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MealPlan, error) {
	var m model.MealPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MealPlanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MealPlan{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MealPlanRepositoryImpl) CreateItem(ctx context.Context, item *entity.MealPlanItem) error {
	m := r.mapper.ItemToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	recipe := item.Recipe
	*item = *r.mapper.ItemToEntity(m)
	item.Recipe = recipe
	return nil
}

func (r *MealPlanRepositoryImpl) FindItem(ctx context.Context, specs ...specification.Specification) (*entity.MealPlanItem, error) {
	var m model.MealPlanItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ItemToEntity(&m), nil
}

func (r *MealPlanRepositoryImpl) UpdateItemRecipe(ctx context.Context, itemId uuid.UUID, recipeId uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.MealPlanItem{}).
		Where("id = ?", itemId).
		Update("recipe_id", recipeId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *MealPlanRepositoryImpl) DeleteItemsByPlan(ctx context.Context, planId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("plan_id = ?", planId).Delete(&model.MealPlanItem{}).Error
}

func (r *MealPlanRepositoryImpl) FindItemsWithRecipes(ctx context.Context, planId uuid.UUID) ([]*entity.MealPlanItem, error) {
	var items []*model.MealPlanItem
	if err := r.db.WithContext(ctx).Where("plan_id = ?", planId).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*entity.MealPlanItem{}, nil
	}

	recipeIds := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.RecipeId]; ok {
			continue
		}
		seen[item.RecipeId] = struct{}{}
		recipeIds = append(recipeIds, item.RecipeId)
	}

	var recipes []*model.Recipe
	if err := r.db.WithContext(ctx).Where("id IN ?", recipeIds).Find(&recipes).Error; err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.Recipe, len(recipes))
	for _, recipe := range recipes {
		byId[recipe.Id] = r.recipeMapper.ToEntity(recipe)
	}

	result := r.mapper.ItemsToEntities(items)
	for _, item := range result {
		item.Recipe = byId[item.RecipeId]
	}
	sort.SliceStable(result, func(i, j int) bool {
		di, dj := result[i].DayOfWeek.Index(), result[j].DayOfWeek.Index()
		if di != dj {
			return di < dj
		}
		return result[i].MealNumber < result[j].MealNumber
	})
	return result, nil
}
