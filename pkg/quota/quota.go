// Package quota enforces the per-user daily allowance of recipe provider calls.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Logger is the subset of the application logger used here.
type Logger interface {
	Warn(module, message string, details map[string]interface{})
}

// Unlimited disables the check for a caller.
const Unlimited = -1

type Usage struct {
	Used    int64
	Limit   int
	ResetAt time.Time
}

// Allowed reports whether the charged call fits the limit.
func (u Usage) Allowed() bool {
	return u.Limit == Unlimited || u.Used <= int64(u.Limit)
}

// Remaining is the number of calls left today, or -1 when unlimited.
func (u Usage) Remaining() int64 {
	if u.Limit == Unlimited {
		return Unlimited
	}
	if left := int64(u.Limit) - u.Used; left > 0 {
		return left
	}
	return 0
}

// Tracker counts calls per user per local day. The primary counter is
// usually Redis; on error the in-memory fallback takes over for that call.
type Tracker struct {
	primary  Counter
	fallback Counter
	logger   Logger
	now      func() time.Time
}

func NewTracker(primary Counter, fallback Counter, logger Logger) *Tracker {
	if fallback == nil {
		fallback = NewMemoryCounter()
	}
	if primary == nil {
		primary = fallback
	}
	return &Tracker{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (t *Tracker) key(userId uuid.UUID, day time.Time) string {
	return fmt.Sprintf("quota:provider:%s:%s", userId, day.Format("2006-01-02"))
}

func (t *Tracker) window() (time.Time, time.Time) {
	now := t.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return now, start.AddDate(0, 0, 1)
}

// Charge records one call and returns the usage after it.
func (t *Tracker) Charge(ctx context.Context, userId uuid.UUID, limit int) (Usage, error) {
	now, resetAt := t.window()
	key := t.key(userId, now)
	ttl := resetAt.Sub(now)

	used, err := t.primary.Incr(ctx, key, ttl)
	if err != nil && t.primary != t.fallback {
		t.warn("Quota counter unavailable, using in-memory fallback", err)
		used, err = t.fallback.Incr(ctx, key, ttl)
	}
	if err != nil {
		return Usage{}, err
	}
	return Usage{Used: used, Limit: limit, ResetAt: resetAt}, nil
}

// Peek returns today's usage without charging.
func (t *Tracker) Peek(ctx context.Context, userId uuid.UUID, limit int) (Usage, error) {
	now, resetAt := t.window()
	key := t.key(userId, now)

	used, err := t.primary.Get(ctx, key)
	if err != nil && t.primary != t.fallback {
		t.warn("Quota counter unavailable, using in-memory fallback", err)
		used, err = t.fallback.Get(ctx, key)
	}
	if err != nil {
		return Usage{}, err
	}
	return Usage{Used: used, Limit: limit, ResetAt: resetAt}, nil
}

func (t *Tracker) warn(msg string, err error) {
	if t.logger != nil {
		t.logger.Warn("QUOTA", msg, map[string]interface{}{"error": err.Error()})
	}
}
