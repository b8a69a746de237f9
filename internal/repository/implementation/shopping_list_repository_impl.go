package implementation

import (
	"context"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/mapper"
	"meal-planner-be/internal/model"
	"meal-planner-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingListRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShoppingListMapper
}

func NewShoppingListRepository(db *gorm.DB) contract.ShoppingListRepository {
	return &ShoppingListRepositoryImpl{
		db:     db,
		mapper: mapper.NewShoppingListMapper(),
	}
}

func (r *ShoppingListRepositoryImpl) DeleteByPlan(ctx context.Context, planId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("plan_id = ?", planId).Delete(&model.ShoppingListItem{}).Error
}

func (r *ShoppingListRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.ShoppingListItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.ShoppingListItem, len(items))
	for i, item := range items {
		models[i] = r.mapper.ToModel(item)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*items[i] = *r.mapper.ToEntity(m)
	}
	return nil
}
