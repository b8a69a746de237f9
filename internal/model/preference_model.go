package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Preference struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	DietType      string    `gorm:"type:varchar(100)"`
	CalorieTarget *int
	Allergies     string    `gorm:"type:text"`
	MealsPerDay   int       `gorm:"default:3"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Preference) TableName() string {
	return "preferences"
}

func (p *Preference) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}
