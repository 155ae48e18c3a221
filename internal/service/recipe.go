package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"instantchef/internal/models"
)

// DefaultMaxRecentRecipes bounds the recent-recipe list when the user has no
// preference record.
const DefaultMaxRecentRecipes = 5

// recentRetention is how many recent associations are kept per user before
// older ones are pruned. It matches the variety window the prompt builder
// reads, which is wider than the display cap.
const recentRetention = 20

// ErrRecipeNotSaved is returned when customizing a recipe the user has not saved.
var ErrRecipeNotSaved = errors.New("recipe not found in saved")

// RecipeService handles recipe retrieval and the per-user recent/saved
// associations.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// RecipeView is a recipe annotated with its saved state for the current user.
type RecipeView struct {
	models.Recipe
	IsSaved bool `json:"is_saved"`
}

// RecentRecipes returns the user's most recent generated recipes, capped by
// their max_recent_recipes preference, each flagged with saved state.
func (s *RecipeService) RecentRecipes(ctx context.Context, userID uuid.UUID) ([]RecipeView, error) {
	limit := DefaultMaxRecentRecipes
	var prefs models.UserPreferences
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err == nil && prefs.MaxRecentRecipes > 0 {
		limit = prefs.MaxRecentRecipes
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recent_recipes ON recent_recipes.recipe_id = recipes.id").
		Where("recent_recipes.user_id = ?", userID).
		Order("recent_recipes.created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	savedIDs, err := s.savedRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, RecipeView{Recipe: r, IsSaved: savedIDs[r.ID]})
	}
	return views, nil
}

// RecentHistory returns up to n recent recipes as title/cuisine/ingredient
// summaries for variety-seeding the prompt builder.
func (s *RecipeService) RecentHistory(ctx context.Context, userID uuid.UUID, n int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recent_recipes ON recent_recipes.recipe_id = recipes.id").
		Where("recent_recipes.user_id = ?", userID).
		Order("recent_recipes.created_at DESC").
		Limit(n).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SavedRecipes returns the user's saved recipes, most recently saved first.
func (s *RecipeService) SavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeService) savedRecipeIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var saved []models.SavedRecipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&saved).Error; err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]bool, len(saved))
	for _, sr := range saved {
		ids[sr.RecipeID] = true
	}
	return ids, nil
}

// SaveRecipe adds a recipe to the user's saved collection.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return err
	}

	var existing models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.WithContext(ctx).Create(&models.SavedRecipe{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

// UnsaveRecipe removes a recipe from the user's saved collection.
func (s *RecipeService) UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.SavedRecipe{}).Error
}

// RemoveRecent removes a recipe from the user's recent list.
func (s *RecipeService) RemoveRecent(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecentRecipe{}).Error
}

// AddRecent links a freshly generated recipe into the user's recent history
// and prunes associations past the retention window.
func (s *RecipeService) AddRecent(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Create(&models.RecentRecipe{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error; err != nil {
		return err
	}
	return s.pruneRecent(ctx, userID)
}

func (s *RecipeService) pruneRecent(ctx context.Context, userID uuid.UUID) error {
	var surplus []models.RecentRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(recentRetention).
		Find(&surplus).Error
	if err != nil || len(surplus) == 0 {
		return err
	}

	ids := make([]uuid.UUID, 0, len(surplus))
	for _, r := range surplus {
		ids = append(ids, r.ID)
	}
	return s.db.WithContext(ctx).Delete(&models.RecentRecipe{}, "id IN ?", ids).Error
}

// Customize updates a saved recipe's display color and label. Only recipes the
// user has saved can be customized.
func (s *RecipeService) Customize(ctx context.Context, userID, recipeID uuid.UUID, customColor, customLabel *string) (*models.Recipe, error) {
	var saved models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotSaved
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if customColor != nil {
		updates["custom_color"] = *customColor
	}
	if customLabel != nil {
		updates["custom_label"] = *customLabel
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetRecipe(ctx, recipeID)
}

// Modifications returns the modification log entries for a user, newest first.
func (s *RecipeService) Modifications(ctx context.Context, userID uuid.UUID) ([]models.RecipeModification, error) {
	var mods []models.RecipeModification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&mods).Error
	if err != nil {
		return nil, err
	}
	return mods, nil
}
