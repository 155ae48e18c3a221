package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"instantchef/internal/models"
)

// ExportService assembles a user's full account data into a single JSON
// document for download.
type ExportService struct {
	db      *gorm.DB
	recipes *RecipeService
	prefs   *PreferenceService
	pantry  *PantryService
}

func NewExportService(db *gorm.DB, recipes *RecipeService, prefs *PreferenceService, pantry *PantryService) *ExportService {
	return &ExportService{
		db:      db,
		recipes: recipes,
		prefs:   prefs,
		pantry:  pantry,
	}
}

// AccountExport is the exported document shape.
type AccountExport struct {
	ExportDate    time.Time                   `json:"export_date"`
	User          ExportedUser                `json:"user"`
	Preferences   *models.UserPreferences     `json:"preferences,omitempty"`
	PantryItems   []models.PantryItem         `json:"pantry_items"`
	SavedRecipes  []models.Recipe             `json:"saved_recipes"`
	RecentRecipes []models.Recipe             `json:"recent_recipes"`
	Modifications []models.RecipeModification `json:"recipe_modifications"`
}

type ExportedUser struct {
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	JoinedDate          time.Time `json:"joined_date"`
	LikedIngredients    []string  `json:"liked_ingredients"`
	DislikedIngredients []string  `json:"disliked_ingredients"`
}

// Export gathers everything the account owns.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) (*AccountExport, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	export := &AccountExport{
		ExportDate: time.Now(),
		User: ExportedUser{
			Name:                user.Name,
			Email:               user.Email,
			JoinedDate:          user.CreatedAt,
			LikedIngredients:    user.LikedIngredients,
			DislikedIngredients: user.DislikedIngredients,
		},
	}

	if prefs, err := s.prefs.Get(ctx, userID); err == nil {
		export.Preferences = prefs
	}

	items, err := s.pantry.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	export.PantryItems = items

	saved, err := s.recipes.SavedRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	export.SavedRecipes = saved

	recent, err := s.recipes.RecentHistory(ctx, userID, recentRetention)
	if err != nil {
		return nil, err
	}
	export.RecentRecipes = recent

	mods, err := s.recipes.Modifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	export.Modifications = mods

	return export, nil
}
