package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModification is an append-only log entry of a modification request
// and the assistant's suggestion. Rows are never mutated after creation.
type RecipeModification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserQuery  string    `gorm:"type:text;not null" json:"user_query"`
	AIResponse string    `gorm:"type:text" json:"ai_response"`
	Applied    bool      `gorm:"not null;default:false" json:"applied"`
}

func (RecipeModification) TableName() string {
	return "recipe_modifications"
}

func (m *RecipeModification) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
