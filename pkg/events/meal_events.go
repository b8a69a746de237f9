package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeMealPlanGenerated   = "MEAL_PLAN_GENERATED"
	TypeMealPlanDeleted     = "MEAL_PLAN_DELETED"
	TypeMealReplaced        = "MEAL_REPLACED"
	TypeShoppingListBuilt   = "SHOPPING_LIST_BUILT"
	TypeTierDowngraded      = "TIER_DOWNGRADED"
	TypeProviderQuotaExceed = "PROVIDER_QUOTA_EXCEEDED"
)

func NewMealPlanGenerated(userId, planId uuid.UUID, meals int) BaseEvent {
	return BaseEvent{
		Type: TypeMealPlanGenerated,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"plan_id": planId.String(),
			"meals":   meals,
		},
		OccurredAt: time.Now(),
	}
}

func NewMealPlanDeleted(userId, planId uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: TypeMealPlanDeleted,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"plan_id": planId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewMealReplaced(userId, planId, itemId, recipeId uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: TypeMealReplaced,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"plan_id":   planId.String(),
			"item_id":   itemId.String(),
			"recipe_id": recipeId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewShoppingListBuilt(planId uuid.UUID, items int) BaseEvent {
	return BaseEvent{
		Type: TypeShoppingListBuilt,
		Data: map[string]interface{}{
			"plan_id": planId.String(),
			"items":   items,
		},
		OccurredAt: time.Now(),
	}
}

func NewTierDowngraded(userId uuid.UUID, from string, expiredAt time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeTierDowngraded,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"from_tier":  from,
			"to_tier":    "free",
			"expired_at": expiredAt.Format(time.RFC3339),
		},
		OccurredAt: time.Now(),
	}
}

func NewProviderQuotaExceeded(userId uuid.UUID, tierName string, limit int) BaseEvent {
	return BaseEvent{
		Type: TypeProviderQuotaExceed,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"tier":    tierName,
			"limit":   limit,
		},
		OccurredAt: time.Now(),
	}
}
