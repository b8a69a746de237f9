package implementation

import (
	"context"
	"errors"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/mapper"
	"meal-planner-be/internal/model"
	"meal-planner-be/internal/repository/contract"
	"meal-planner-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PreferenceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error) {
	var m model.Preference
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PreferenceRepositoryImpl) Upsert(ctx context.Context, pref *entity.Preference) error {
	m := r.mapper.ToModel(pref)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"diet_type", "calorie_target", "allergies", "meals_per_day", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	var stored model.Preference
	if err := r.db.WithContext(ctx).Where("user_id = ?", pref.UserId).First(&stored).Error; err != nil {
		return err
	}
	*pref = *r.mapper.ToEntity(&stored)
	return nil
}
