package dto

import (
	"time"

	"github.com/google/uuid"
)

type MeResponse struct {
	Id            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Tier          string     `json:"tier"`
	TierExpiresAt *time.Time `json:"tier_expires_at,omitempty"`
}
