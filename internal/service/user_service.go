package service

import (
	"context"

	"meal-planner-be/internal/dto"

	"github.com/google/uuid"
)

type IUserService interface {
	Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error)
}

type userService struct {
	tierService TierService
}

func NewUserService(tierService TierService) IUserService {
	return &userService{tierService: tierService}
}

func (s *userService) Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.tierService.ResolveEffectiveTier(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		Id:            user.Id,
		Email:         user.Email,
		FullName:      user.FullName,
		Tier:          user.Tier.String(),
		TierExpiresAt: user.TierExpiresAt,
	}, nil
}
