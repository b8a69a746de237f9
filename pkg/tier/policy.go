// Package tier holds the subscription tier table that gates plan generation.
package tier

import (
	"strings"
	"time"
)

type Tier string

const (
	Free    Tier = "free"
	Premium Tier = "premium"
	Pro     Tier = "pro"
)

// Unlimited marks a limit with no cap.
const Unlimited = -1

const DaysPerWeek = 7

// Limits is what a tier is allowed to do.
type Limits struct {
	MaxPlans       int  `json:"max_plans"`      // -1 = unlimited
	MealsPerPlan   int  `json:"meals_per_plan"` // 7 x meals per day
	CanExport      bool `json:"can_export"`
	CanSharePlans  bool `json:"can_share_plans"`
	APICallsPerDay int  `json:"api_calls_per_day"`
}

var table = map[Tier]Limits{
	Free: {
		MaxPlans:       3,
		MealsPerPlan:   14,
		CanExport:      false,
		CanSharePlans:  false,
		APICallsPerDay: 50,
	},
	Premium: {
		MaxPlans:       10,
		MealsPerPlan:   21,
		CanExport:      true,
		CanSharePlans:  false,
		APICallsPerDay: 150,
	},
	Pro: {
		MaxPlans:       Unlimited,
		MealsPerPlan:   28,
		CanExport:      true,
		CanSharePlans:  true,
		APICallsPerDay: 500,
	},
}

// All returns the tiers in upgrade order.
func All() []Tier {
	return []Tier{Free, Premium, Pro}
}

// Parse maps a stored tier name to a Tier, falling back to Free for
// empty or unknown values.
func Parse(s string) Tier {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := table[t]; ok {
		return t
	}
	return Free
}

func (t Tier) Valid() bool {
	_, ok := table[t]
	return ok
}

func (t Tier) String() string {
	return string(t)
}

// LimitsFor returns the limits for t. Unknown tiers get the free limits.
func LimitsFor(t Tier) Limits {
	if l, ok := table[t]; ok {
		return l
	}
	return table[Free]
}

// MaxMealsPerDay is floor(MealsPerPlan / 7).
func (l Limits) MaxMealsPerDay() int {
	return l.MealsPerPlan / DaysPerWeek
}

// PlanCapReached reports whether a user owning count plans may not create another.
func (l Limits) PlanCapReached(count int64) bool {
	if l.MaxPlans == Unlimited {
		return false
	}
	return count >= int64(l.MaxPlans)
}

// Effective evaluates expiry. A paid tier whose expiry is before now is
// reported as Free, with expired=true so the caller can persist the downgrade.
func Effective(t Tier, expiresAt *time.Time, now time.Time) (effective Tier, expired bool) {
	if t != Free && expiresAt != nil && expiresAt.Before(now) {
		return Free, true
	}
	return t, false
}
