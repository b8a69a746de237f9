package entity

import (
	"time"

	"meal-planner-be/pkg/tier"

	"github.com/google/uuid"
)

type User struct {
	Id            uuid.UUID
	Email         string
	PasswordHash  *string
	FullName      string
	Tier          tier.Tier
	TierExpiresAt *time.Time // nil = never expires
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
