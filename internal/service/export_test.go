package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instantchef/internal/models"
)

func TestExportService_Export(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db)
	prefs := NewPreferenceService(db)
	pantry := NewPantryService(db)
	svc := NewExportService(db, recipes, prefs, pantry)
	user := createTestUser(t, db)
	ctx := context.Background()

	_, err := prefs.Upsert(ctx, user.ID, &models.UserPreferences{IsVegetarian: true})
	require.NoError(t, err)
	_, _, err = prefs.SetLikesDislikes(ctx, user.ID, []string{"lime"}, []string{"olives"})
	require.NoError(t, err)
	_, err = pantry.Create(ctx, user.ID, "rice", "grains", "", "", nil)
	require.NoError(t, err)

	recipe := createTestRecipe(t, db, "Carnitas")
	require.NoError(t, recipes.AddRecent(ctx, user.ID, recipe.ID))
	require.NoError(t, recipes.SaveRecipe(ctx, user.ID, recipe.ID))

	export, err := svc.Export(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.Email, export.User.Email)
	assert.Equal(t, []string{"lime"}, export.User.LikedIngredients)
	require.NotNil(t, export.Preferences)
	assert.True(t, export.Preferences.IsVegetarian)
	assert.Len(t, export.PantryItems, 1)
	require.Len(t, export.SavedRecipes, 1)
	assert.Equal(t, "Carnitas", export.SavedRecipes[0].Title)
	assert.Len(t, export.RecentRecipes, 1)
	assert.False(t, export.ExportDate.IsZero())
}

func TestExportService_ExportEmptyAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExportService(db, NewRecipeService(db), NewPreferenceService(db), NewPantryService(db))
	user := createTestUser(t, db)

	export, err := svc.Export(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Nil(t, export.Preferences)
	assert.Empty(t, export.PantryItems)
	assert.Empty(t, export.SavedRecipes)
	assert.Empty(t, export.RecentRecipes)
	assert.Empty(t, export.Modifications)
}
