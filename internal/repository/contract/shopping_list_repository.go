package contract

import (
	"context"

	"meal-planner-be/internal/entity"

	"github.com/google/uuid"
)

type ShoppingListRepository interface {
	DeleteByPlan(ctx context.Context, planId uuid.UUID) error
	CreateBatch(ctx context.Context, items []*entity.ShoppingListItem) error
}
