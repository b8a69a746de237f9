package mapper

import (
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/model"
	"meal-planner-be/pkg/tier"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		FullName:      u.FullName,
		Tier:          tier.Parse(u.SubscriptionTier),
		TierExpiresAt: u.SubscriptionExpiresAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	t := u.Tier
	if !t.Valid() {
		t = tier.Free
	}
	return &model.User{
		Id:                    u.Id,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		FullName:              u.FullName,
		SubscriptionTier:      t.String(),
		SubscriptionExpiresAt: u.TierExpiresAt,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}
