package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPreferences holds a user's dietary preference record. One row per user,
// created on first write and replaced wholesale by the settings endpoint.
type UserPreferences struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	UserID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	MinCookTime         int              `json:"min_cook_time"`
	MaxCookTime         int              `json:"max_cook_time"`
	IsVegan             bool             `json:"is_vegan"`
	IsVegetarian        bool             `json:"is_vegetarian"`
	Allergies           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	PreferredProteins   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"preferred_proteins"`
	PreferredCuisines   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"preferred_cuisines"`
	MaxRecentRecipes    int              `gorm:"default:5" json:"max_recent_recipes"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
