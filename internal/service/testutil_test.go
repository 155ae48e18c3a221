package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"instantchef/internal/models"
)

// setupTestDB opens a fresh in-memory database with the full schema. Each
// call gets its own database so tests cannot see each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserPreferences{},
		&models.Recipe{},
		&models.RecentRecipe{},
		&models.SavedRecipe{},
		&models.DailyGeneration{},
		&models.RecipeModification{},
		&models.PantryItem{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Name:                "Test User",
		Email:               fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash:        "not-a-real-hash",
		LikedIngredients:    models.JSONBStringArray{},
		DislikedIngredients: models.JSONBStringArray{},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, db *gorm.DB, title string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:       title,
		Description: "test recipe",
		PrepTime:    10,
		CookTime:    20,
		TotalTime:   30,
		Servings:    4,
		Difficulty:  "Easy",
		Cuisine:     "Mexican",
		Ingredients: models.IngredientList{
			{Amount: "1 lb", Item: "chicken breast"},
		},
		Instructions: models.JSONBStringArray{"Cook it."},
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
