package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyGeneration counts recipe generations per user per calendar day.
// The date component of the key resets the counter implicitly; there is no
// reset job.
type DailyGeneration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_date" json:"user_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_user_date" json:"date"`
	Count     int       `gorm:"not null;default:0" json:"count"`
}

func (DailyGeneration) TableName() string {
	return "daily_generations"
}

func (d *DailyGeneration) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
