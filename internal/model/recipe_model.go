package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalId int64     `gorm:"index"`
	Title      string    `gorm:"type:varchar(500);not null"`
	ImageURL   string    `gorm:"column:image_url;type:text"`
	Source     string    `gorm:"type:varchar(50);not null"`
	Calories   float64   `gorm:"default:0"`
	DietType   string    `gorm:"type:varchar(100)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}

// Ingredient.Name holds the canonical (normalized) name and is the upsert conflict key.
type Ingredient struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName string    `gorm:"type:varchar(255);not null"`
	Category    string    `gorm:"type:varchar(100);not null;default:'Other'"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.Id == uuid.Nil {
		i.Id = uuid.New()
	}
	return nil
}

type RecipeIngredient struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeId     uuid.UUID `gorm:"type:uuid;not null;index"`
	IngredientId uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount       float64   `gorm:"default:0"`
	Unit         string    `gorm:"type:varchar(50)"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.Id == uuid.Nil {
		ri.Id = uuid.New()
	}
	return nil
}

// RecipeIngredientRow is the scan target for recipe_ingredients joined with ingredients.
type RecipeIngredientRow struct {
	RecipeId     uuid.UUID
	IngredientId uuid.UUID
	Name         string
	DisplayName  string
	Category     string
	Amount       float64
	Unit         string
}
