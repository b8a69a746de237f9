// DTOs for tier limits and usage status
package dto

import (
	"time"

	"meal-planner-be/pkg/tier"
)

// UsageLimit represents a single limit status
type UsageLimit struct {
	Used     int64      `json:"used"`
	Limit    int        `json:"limit"` // -1 = unlimited
	CanUse   bool       `json:"can_use"`
	ResetsAt *time.Time `json:"resets_at,omitempty"` // For daily limits
}

// UsageStatusResponse is returned by GET /api/user/v1/usage-status
type UsageStatusResponse struct {
	Tier             string      `json:"tier"`
	TierExpiresAt    *time.Time  `json:"tier_expires_at,omitempty"`
	Limits           tier.Limits `json:"limits"`
	MaxMealsPerDay   int         `json:"max_meals_per_day"`
	Plans            UsageLimit  `json:"plans"`
	ProviderCalls    UsageLimit  `json:"provider_calls"`
	UpgradeAvailable bool        `json:"upgrade_available"`
}

// TierResponse is returned by GET /api/plans/tiers (public)
type TierResponse struct {
	Tier           string      `json:"tier"`
	Limits         tier.Limits `json:"limits"`
	MaxMealsPerDay int         `json:"max_meals_per_day"`
}
