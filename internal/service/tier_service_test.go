package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/pkg/events"
	"meal-planner-be/pkg/tier"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierService_ResolveEffectiveTier(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name       string
		tier       tier.Tier
		expiresAt  *time.Time
		want       tier.Tier
		downgraded bool
	}{
		{"free stays free", tier.Free, nil, tier.Free, false},
		{"premium without expiry", tier.Premium, nil, tier.Premium, false},
		{"premium not yet expired", tier.Premium, &future, tier.Premium, false},
		{"premium expired", tier.Premium, &past, tier.Free, true},
		{"pro expired", tier.Pro, &past, tier.Free, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			user := env.seedUser(t, tt.tier, tt.expiresAt)

			resolved, err := env.tiers.ResolveEffectiveTier(ctx, user.Id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resolved.Tier)

			// The downgrade is persisted, not just reported.
			uow := env.factory.NewUnitOfWork(ctx)
			stored, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Tier)

			if tt.downgraded {
				assert.Nil(t, stored.TierExpiresAt)
				assert.Equal(t, []string{events.TypeTierDowngraded}, env.publisher.published())
			} else {
				assert.Empty(t, env.publisher.published())
			}
		})
	}
}

func TestTierService_ResolveEffectiveTierUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.tiers.ResolveEffectiveTier(context.Background(), uuid.New())
	requireAppError(t, err, apperror.CodeNotFound, http.StatusNotFound)
}

func TestTierService_ExpiredPremiumLosesThirdMeal(t *testing.T) {
	env := newTestEnv(t)
	past := time.Now().Add(-time.Minute)
	user := env.seedUser(t, tier.Premium, &past)
	env.seedPreference(t, user.Id, 3)

	_, err := env.mealPlans.Generate(context.Background(), user.Id)
	appErr := requireAppError(t, err, apperror.CodePolicyRejection, http.StatusForbidden)
	assert.Contains(t, appErr.Message, "free tier")
}

func TestTierService_GetTiers(t *testing.T) {
	env := newTestEnv(t)
	tiers := env.tiers.GetTiers(context.Background())

	require.Len(t, tiers, 3)
	assert.Equal(t, "free", tiers[0].Tier)
	assert.Equal(t, 2, tiers[0].MaxMealsPerDay)
	assert.Equal(t, "pro", tiers[2].Tier)
	assert.Equal(t, tier.Unlimited, tiers[2].Limits.MaxPlans)
}

func TestTierService_GetUsageStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, tier.Free, nil)
	env.seedPreference(t, user.Id, 2)
	env.provider.searchResults = fakeRecipes(1, 14)

	_, err := env.mealPlans.Generate(ctx, user.Id)
	require.NoError(t, err)

	status, err := env.tiers.GetUsageStatus(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, "free", status.Tier)
	assert.Equal(t, int64(1), status.Plans.Used)
	assert.Equal(t, 3, status.Plans.Limit)
	assert.True(t, status.Plans.CanUse)
	assert.Equal(t, int64(1), status.ProviderCalls.Used)
	assert.Equal(t, 50, status.ProviderCalls.Limit)
	require.NotNil(t, status.ProviderCalls.ResetsAt)
	assert.True(t, status.ProviderCalls.ResetsAt.After(time.Now()))
	assert.True(t, status.UpgradeAvailable)
}
