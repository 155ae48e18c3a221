package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"instantchef/internal/models"
)

func TestRecipeService_SaveAndUnsave(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, "Carnitas")
	ctx := context.Background()

	require.NoError(t, svc.SaveRecipe(ctx, user.ID, recipe.ID))

	saved, err := svc.SavedRecipes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, recipe.ID, saved[0].ID)

	require.NoError(t, svc.UnsaveRecipe(ctx, user.ID, recipe.ID))

	saved, err = svc.SavedRecipes(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestRecipeService_SaveIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, "Carnitas")
	ctx := context.Background()

	require.NoError(t, svc.SaveRecipe(ctx, user.ID, recipe.ID))
	require.NoError(t, svc.SaveRecipe(ctx, user.ID, recipe.ID))

	var count int64
	require.NoError(t, db.Model(&models.SavedRecipe{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecipeService_SaveUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)

	err := svc.SaveRecipe(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// addRecentAt inserts a recent association with an explicit timestamp so
// ordering assertions do not depend on insert timing.
func addRecentAt(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.RecentRecipe{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: at,
	}).Error)
}

func TestRecipeService_RecentRecipesDefaultCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		recipe := createTestRecipe(t, db, fmt.Sprintf("Recipe %d", i))
		addRecentAt(t, db, user.ID, recipe.ID, base.Add(time.Duration(i)*time.Minute))
	}

	views, err := svc.RecentRecipes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, views, DefaultMaxRecentRecipes)
	// Newest first.
	assert.Equal(t, "Recipe 7", views[0].Title)
	assert.Equal(t, "Recipe 3", views[4].Title)
}

func TestRecipeService_RecentRecipesHonorsPreferenceCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	require.NoError(t, db.Create(&models.UserPreferences{UserID: user.ID, MaxRecentRecipes: 2}).Error)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		recipe := createTestRecipe(t, db, fmt.Sprintf("Recipe %d", i))
		addRecentAt(t, db, user.ID, recipe.ID, base.Add(time.Duration(i)*time.Minute))
	}

	views, err := svc.RecentRecipes(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestRecipeService_RecentRecipesFlagSaved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	first := createTestRecipe(t, db, "Saved One")
	second := createTestRecipe(t, db, "Unsaved One")
	addRecentAt(t, db, user.ID, first.ID, base)
	addRecentAt(t, db, user.ID, second.ID, base.Add(time.Minute))
	require.NoError(t, svc.SaveRecipe(ctx, user.ID, first.ID))

	views, err := svc.RecentRecipes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Unsaved One", views[0].Title)
	assert.False(t, views[0].IsSaved)
	assert.Equal(t, "Saved One", views[1].Title)
	assert.True(t, views[1].IsSaved)
}

func TestRecipeService_AddRecentPrunesRetention(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	ctx := context.Background()

	for i := 0; i < recentRetention+5; i++ {
		recipe := createTestRecipe(t, db, fmt.Sprintf("Recipe %d", i))
		require.NoError(t, svc.AddRecent(ctx, user.ID, recipe.ID))
	}

	var count int64
	require.NoError(t, db.Model(&models.RecentRecipe{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(recentRetention), count)
}

func TestRecipeService_RemoveRecent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, "Carnitas")
	ctx := context.Background()

	require.NoError(t, svc.AddRecent(ctx, user.ID, recipe.ID))
	require.NoError(t, svc.RemoveRecent(ctx, user.ID, recipe.ID))

	history, err := svc.RecentHistory(ctx, user.ID, recentRetention)
	require.NoError(t, err)
	assert.Empty(t, history)

	// The recipe itself survives removal from the list.
	_, err = svc.GetRecipe(ctx, recipe.ID)
	assert.NoError(t, err)
}

func TestRecipeService_CustomizeRequiresSaved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, "Carnitas")

	color := "#ff0000"
	_, err := svc.Customize(context.Background(), user.ID, recipe.ID, &color, nil)
	assert.ErrorIs(t, err, ErrRecipeNotSaved)
}

func TestRecipeService_CustomizePartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, "Carnitas")
	ctx := context.Background()

	require.NoError(t, svc.SaveRecipe(ctx, user.ID, recipe.ID))

	color := "#ff0000"
	label := "Weeknight favorite"
	updated, err := svc.Customize(ctx, user.ID, recipe.ID, &color, &label)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", updated.CustomColor)
	assert.Equal(t, "Weeknight favorite", updated.CustomLabel)

	// Updating only the label leaves the color in place.
	newLabel := "Meal prep"
	updated, err = svc.Customize(ctx, user.ID, recipe.ID, nil, &newLabel)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", updated.CustomColor)
	assert.Equal(t, "Meal prep", updated.CustomLabel)
}
