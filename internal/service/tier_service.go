// Service for tier resolution, usage status and the daily provider quota
package service

import (
	"context"
	"fmt"
	"time"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/pkg/events"
	"meal-planner-be/pkg/quota"
	"meal-planner-be/pkg/tier"

	"github.com/google/uuid"
)

type TierService interface {
	// Public
	GetTiers(ctx context.Context) []*dto.TierResponse

	// ResolveEffectiveTier loads the user and applies lazy expiry. An expired
	// paid tier is persisted as free before returning.
	ResolveEffectiveTier(ctx context.Context, userId uuid.UUID) (*entity.User, error)
	GetUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)

	// ChargeProviderCall counts one provider-backed operation against the
	// tier's daily allowance.
	ChargeProviderCall(ctx context.Context, user *entity.User) error
}

type tierService struct {
	uowFactory unitofwork.RepositoryFactory
	quota      *quota.Tracker
	publisher  events.Publisher
	metrics    MetricsRecorder
	logger     logger.ILogger
	now        func() time.Time
}

func NewTierService(
	uowFactory unitofwork.RepositoryFactory,
	quotaTracker *quota.Tracker,
	publisher events.Publisher,
	metrics MetricsRecorder,
	log logger.ILogger,
) TierService {
	return &tierService{
		uowFactory: uowFactory,
		quota:      quotaTracker,
		publisher:  publisher,
		metrics:    metrics,
		logger:     log,
		now:        time.Now,
	}
}

func (s *tierService) GetTiers(ctx context.Context) []*dto.TierResponse {
	result := make([]*dto.TierResponse, 0, len(tier.All()))
	for _, t := range tier.All() {
		limits := tier.LimitsFor(t)
		result = append(result, &dto.TierResponse{
			Tier:           t.String(),
			Limits:         limits,
			MaxMealsPerDay: limits.MaxMealsPerDay(),
		})
	}
	return result
}

func (s *tierService) ResolveEffectiveTier(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	effective, expired := tier.Effective(user.Tier, user.TierExpiresAt, s.now())
	if !expired {
		return user, nil
	}

	previous := user.Tier
	expiredAt := *user.TierExpiresAt
	if err := uow.UserRepository().UpdateTier(ctx, user.Id, effective, nil); err != nil {
		return nil, apperror.Internal("Failed to update subscription tier", err)
	}
	user.Tier = effective
	user.TierExpiresAt = nil

	s.logger.Info("TIER", "Subscription expired, downgraded to free", map[string]interface{}{
		"user_id":    user.Id.String(),
		"from_tier":  previous.String(),
		"expired_at": expiredAt,
	})
	if err := s.publisher.Publish(ctx, events.NewTierDowngraded(user.Id, previous.String(), expiredAt)); err != nil {
		s.logger.Warn("TIER", "Failed to publish downgrade event", map[string]interface{}{"error": err.Error()})
	}

	return user, nil
}

func (s *tierService) GetUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	user, err := s.ResolveEffectiveTier(ctx, userId)
	if err != nil {
		return nil, err
	}
	limits := tier.LimitsFor(user.Tier)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	planCount, err := uow.MealPlanRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to count meal plans", err)
	}

	usage, err := s.quota.Peek(ctx, userId, limits.APICallsPerDay)
	if err != nil {
		return nil, apperror.Internal("Failed to read usage", err)
	}
	resetsAt := usage.ResetAt

	return &dto.UsageStatusResponse{
		Tier:           user.Tier.String(),
		TierExpiresAt:  user.TierExpiresAt,
		Limits:         limits,
		MaxMealsPerDay: limits.MaxMealsPerDay(),
		Plans: dto.UsageLimit{
			Used:   planCount,
			Limit:  limits.MaxPlans,
			CanUse: !limits.PlanCapReached(planCount),
		},
		ProviderCalls: dto.UsageLimit{
			Used:     usage.Used,
			Limit:    limits.APICallsPerDay,
			CanUse:   usage.Remaining() != 0,
			ResetsAt: &resetsAt,
		},
		UpgradeAvailable: user.Tier != tier.Pro,
	}, nil
}

func (s *tierService) ChargeProviderCall(ctx context.Context, user *entity.User) error {
	limits := tier.LimitsFor(user.Tier)

	usage, err := s.quota.Charge(ctx, user.Id, limits.APICallsPerDay)
	if err != nil {
		// Counting is not worth failing the request over.
		s.logger.Warn("TIER", "Failed to charge provider quota", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err.Error(),
		})
		return nil
	}

	if !usage.Allowed() {
		s.metrics.QuotaRejected(user.Tier.String())
		if err := s.publisher.Publish(ctx, events.NewProviderQuotaExceeded(user.Id, user.Tier.String(), limits.APICallsPerDay)); err != nil {
			s.logger.Warn("TIER", "Failed to publish quota event", map[string]interface{}{"error": err.Error()})
		}
		return apperror.QuotaExceeded(fmt.Sprintf(
			"Your %s tier allows %d recipe requests per day. Upgrade for more!",
			user.Tier, limits.APICallsPerDay,
		))
	}
	return nil
}
