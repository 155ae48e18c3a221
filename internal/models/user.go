package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	DeletedAt           gorm.DeletedAt   `gorm:"index" json:"-"`
	Name                string           `gorm:"not null" json:"name"`
	Email               string           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash        string           `gorm:"not null" json:"-"`
	LikedIngredients    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"liked_ingredients"`
	DislikedIngredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"disliked_ingredients"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
