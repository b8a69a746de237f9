package contract

import (
	"context"
	"time"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/pkg/tier"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateTier persists a tier change; expiresAt nil clears the expiry.
	UpdateTier(ctx context.Context, id uuid.UUID, t tier.Tier, expiresAt *time.Time) error
}
