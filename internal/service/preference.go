package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"instantchef/internal/models"
)

// PreferenceService manages a user's dietary preference record and their
// liked/disliked ingredient lists.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns the user's preference record, or gorm.ErrRecordNotFound if the
// user has never saved preferences.
func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Upsert replaces the user's preference record wholesale, creating it on
// first write. min <= max is deliberately not enforced.
func (s *PreferenceService) Upsert(ctx context.Context, userID uuid.UUID, input *models.UserPreferences) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		prefs = models.UserPreferences{UserID: userID}
	}

	prefs.MinCookTime = input.MinCookTime
	prefs.MaxCookTime = input.MaxCookTime
	prefs.IsVegan = input.IsVegan
	prefs.IsVegetarian = input.IsVegetarian
	prefs.Allergies = emptyIfNil(input.Allergies)
	prefs.DietaryRestrictions = emptyIfNil(input.DietaryRestrictions)
	prefs.PreferredProteins = emptyIfNil(input.PreferredProteins)
	prefs.PreferredCuisines = emptyIfNil(input.PreferredCuisines)
	if input.MaxRecentRecipes > 0 {
		prefs.MaxRecentRecipes = input.MaxRecentRecipes
	} else if prefs.MaxRecentRecipes == 0 {
		prefs.MaxRecentRecipes = DefaultMaxRecentRecipes
	}

	if err := s.db.WithContext(ctx).Save(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// LikesDislikes returns the user's liked and disliked ingredient lists.
func (s *PreferenceService) LikesDislikes(ctx context.Context, userID uuid.UUID) (liked, disliked []string, err error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, err
	}
	return user.LikedIngredients, user.DislikedIngredients, nil
}

// Vote adds or removes a single ingredient from the liked or disliked list.
// An ingredient can only be on one list; adding it to one removes it from the
// other.
func (s *PreferenceService) Vote(ctx context.Context, userID uuid.UUID, ingredient, action, kind string) (liked, disliked []string, err error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, err
	}

	likedList := []string(user.LikedIngredients)
	dislikedList := []string(user.DislikedIngredients)

	switch kind {
	case "like":
		switch action {
		case "add":
			if !containsString(likedList, ingredient) {
				likedList = append(likedList, ingredient)
			}
			dislikedList = removeString(dislikedList, ingredient)
		case "remove":
			likedList = removeString(likedList, ingredient)
		default:
			return nil, nil, fmt.Errorf("invalid action: %s", action)
		}
	case "dislike":
		switch action {
		case "add":
			if !containsString(dislikedList, ingredient) {
				dislikedList = append(dislikedList, ingredient)
			}
			likedList = removeString(likedList, ingredient)
		case "remove":
			dislikedList = removeString(dislikedList, ingredient)
		default:
			return nil, nil, fmt.Errorf("invalid action: %s", action)
		}
	default:
		return nil, nil, fmt.Errorf("invalid type: %s", kind)
	}

	return s.saveLists(ctx, &user, likedList, dislikedList)
}

// SetLikesDislikes replaces both ingredient lists wholesale.
func (s *PreferenceService) SetLikesDislikes(ctx context.Context, userID uuid.UUID, likedList, dislikedList []string) (liked, disliked []string, err error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, err
	}
	return s.saveLists(ctx, &user, emptyIfNil(likedList), emptyIfNil(dislikedList))
}

// RemoveIngredient drops an ingredient from both lists.
func (s *PreferenceService) RemoveIngredient(ctx context.Context, userID uuid.UUID, ingredient string) (liked, disliked []string, err error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, err
	}
	return s.saveLists(ctx, &user,
		removeString(user.LikedIngredients, ingredient),
		removeString(user.DislikedIngredients, ingredient))
}

func (s *PreferenceService) saveLists(ctx context.Context, user *models.User, likedList, dislikedList []string) (liked, disliked []string, err error) {
	user.LikedIngredients = models.JSONBStringArray(likedList)
	user.DislikedIngredients = models.JSONBStringArray(dislikedList)
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, nil, err
	}
	return likedList, dislikedList, nil
}

func removeString(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func emptyIfNil(list []string) models.JSONBStringArray {
	if list == nil {
		return models.JSONBStringArray{}
	}
	return models.JSONBStringArray(list)
}
