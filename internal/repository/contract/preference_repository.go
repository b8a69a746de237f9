package contract

import (
	"context"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/repository/specification"
)

type PreferenceRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error)
	// Upsert creates or replaces the single preference row of pref.UserId.
	Upsert(ctx context.Context, pref *entity.Preference) error
}
