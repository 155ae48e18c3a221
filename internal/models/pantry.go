package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PantryItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Category   string         `gorm:"size:100" json:"category"`
	Quantity   string         `gorm:"size:50" json:"quantity,omitempty"`
	Unit       string         `gorm:"size:50" json:"unit,omitempty"`
	ExpiryDate *time.Time     `json:"expiry_date,omitempty"`
}

func (PantryItem) TableName() string {
	return "pantry_items"
}

func (p *PantryItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
