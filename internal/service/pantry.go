package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"instantchef/internal/models"
)

// PantryService manages a user's pantry items.
type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// List returns the user's pantry items, newest first.
func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create adds a pantry item for the user.
func (s *PantryService) Create(ctx context.Context, userID uuid.UUID, name, category, quantity, unit string, expiryDate *time.Time) (*models.PantryItem, error) {
	item := models.PantryItem{
		UserID:     userID,
		Name:       name,
		Category:   category,
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: expiryDate,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a pantry item. The item must belong to the user.
func (s *PantryService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	var item models.PantryItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&item).Error
}
