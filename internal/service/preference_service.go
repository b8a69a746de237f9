package service

import (
	"context"
	"strings"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPreferenceService interface {
	// Get returns nil when the user has not saved preferences yet.
	Get(ctx context.Context, userId uuid.UUID) (*dto.PreferenceResponse, error)
	Save(ctx context.Context, userId uuid.UUID, req *dto.SavePreferencesRequest) (*dto.PreferenceResponse, error)
}

type preferenceService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewPreferenceService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IPreferenceService {
	return &preferenceService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *preferenceService) Get(ctx context.Context, userId uuid.UUID) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.PreferenceRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load preferences", err)
	}
	if pref == nil {
		return nil, nil
	}
	return toPreferenceResponse(pref), nil
}

func (s *preferenceService) Save(ctx context.Context, userId uuid.UUID, req *dto.SavePreferencesRequest) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	pref := &entity.Preference{
		UserId:        userId,
		DietType:      strings.TrimSpace(req.DietType),
		CalorieTarget: req.CalorieTarget,
		Allergies:     strings.TrimSpace(req.Allergies),
		MealsPerDay:   req.MealsPerDay,
	}
	if err := uow.PreferenceRepository().Upsert(ctx, pref); err != nil {
		return nil, apperror.Internal("Failed to save preferences", err)
	}

	s.logger.Info("PREFERENCE", "Preferences saved", map[string]interface{}{
		"user_id":       userId.String(),
		"meals_per_day": pref.MealsPerDay,
	})
	return toPreferenceResponse(pref), nil
}

func toPreferenceResponse(p *entity.Preference) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		Id:            p.Id,
		UserId:        p.UserId,
		DietType:      p.DietType,
		CalorieTarget: p.CalorieTarget,
		Allergies:     p.Allergies,
		MealsPerDay:   p.MealsPerDay,
		UpdatedAt:     p.UpdatedAt,
	}
}
