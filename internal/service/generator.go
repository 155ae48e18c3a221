package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"instantchef/internal/models"
	"instantchef/internal/prompt"
)

// historyWindow is how many recent recipes seed the variety block.
const historyWindow = 20

// GenerateParams carries a single generation request.
type GenerateParams struct {
	Type           prompt.GenerationType
	TimeLimit      int
	Protein        string
	Cuisine        string
	UsePreferences bool
	PantryItems    []string
}

// GenerateResult is a generated recipe plus how preferences factored in.
type GenerateResult struct {
	Recipe                *models.Recipe
	PreferencesApplied    bool
	PreferencesOverridden []string
}

// GeneratorService orchestrates recipe generation: quota check, preference
// merge, prompt construction, the completion call, and persistence.
type GeneratorService struct {
	db      *gorm.DB
	llm     CompletionClient
	quota   *QuotaService
	recipes *RecipeService
	builder *prompt.Builder
}

func NewGeneratorService(db *gorm.DB, llm CompletionClient, quota *QuotaService, recipes *RecipeService, builder *prompt.Builder) *GeneratorService {
	return &GeneratorService{
		db:      db,
		llm:     llm,
		quota:   quota,
		recipes: recipes,
		builder: builder,
	}
}

// Generate produces and persists a new recipe for the user.
func (s *GeneratorService) Generate(ctx context.Context, userID uuid.UUID, params GenerateParams) (*GenerateResult, error) {
	_, _, allowed, err := s.quota.Check(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check generation quota: %w", err)
	}
	if !allowed {
		return nil, ErrDailyLimitReached
	}

	prefs, err := s.loadPreferences(ctx, userID, params.UsePreferences)
	if err != nil {
		return nil, err
	}

	history, err := s.recipes.RecentHistory(ctx, userID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent recipes: %w", err)
	}

	req := prompt.Request{
		Type:        params.Type,
		TimeLimit:   params.TimeLimit,
		Protein:     params.Protein,
		Cuisine:     params.Cuisine,
		PantryItems: params.PantryItems,
	}
	built := s.builder.Build(req, prefs, historySummaries(history))

	payload, err := s.llm.GenerateRecipe(ctx, built.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	// The completion call succeeded, so the generation is chargeable from
	// here on regardless of how persistence goes.
	if err := s.quota.Record(ctx, userID); err != nil {
		log.Printf("warning: failed to record generation for user %s: %v", userID, err)
	}

	data, err := ParseRecipe(payload)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:        data.Title,
		Description:  data.Description,
		PrepTime:     int(data.PrepTime),
		CookTime:     int(data.CookTime),
		TotalTime:    int(data.TotalTime),
		Servings:     int(data.Servings),
		Difficulty:   data.Difficulty,
		Cuisine:      data.Cuisine,
		Ingredients:  models.IngredientList(data.Ingredients),
		Instructions: models.JSONBStringArray(data.Instructions),
		Tips:         data.Tips,
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	if err := s.recipes.AddRecent(ctx, userID, recipe.ID); err != nil {
		return nil, fmt.Errorf("failed to link recipe into recent history: %w", err)
	}

	return &GenerateResult{
		Recipe:                &recipe,
		PreferencesApplied:    params.UsePreferences && prefs != nil,
		PreferencesOverridden: built.Overrides,
	}, nil
}

// loadPreferences merges the preference record and the user's ingredient
// lists into the builder's view. A user who opted out, or who has no record,
// generates without a preference block.
func (s *GeneratorService) loadPreferences(ctx context.Context, userID uuid.UUID, usePreferences bool) (*prompt.Preferences, error) {
	if !usePreferences {
		return nil, nil
	}

	var stored models.UserPreferences
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &prompt.Preferences{
		MinCookTime:         stored.MinCookTime,
		MaxCookTime:         stored.MaxCookTime,
		IsVegan:             stored.IsVegan,
		IsVegetarian:        stored.IsVegetarian,
		Allergies:           stored.Allergies,
		DietaryRestrictions: stored.DietaryRestrictions,
		DislikedIngredients: user.DislikedIngredients,
		LikedIngredients:    user.LikedIngredients,
		PreferredProteins:   stored.PreferredProteins,
		PreferredCuisines:   stored.PreferredCuisines,
	}, nil
}

func historySummaries(history []models.Recipe) []prompt.RecentRecipe {
	summaries := make([]prompt.RecentRecipe, 0, len(history))
	for _, r := range history {
		items := make([]string, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			items = append(items, ing.Item)
		}
		summaries = append(summaries, prompt.RecentRecipe{
			Title:       r.Title,
			Cuisine:     r.Cuisine,
			Ingredients: items,
		})
	}
	return summaries
}

// Suggest asks the assistant for a free-text modification suggestion and logs
// it. The recipe itself is left untouched.
func (s *GeneratorService) Suggest(ctx context.Context, userID, recipeID uuid.UUID, query string) (string, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return "", err
	}

	suggestion, err := s.llm.SuggestModification(ctx, &recipe, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate modification: %w", err)
	}

	entry := models.RecipeModification{
		RecipeID:   recipeID,
		UserID:     userID,
		UserQuery:  query,
		AIResponse: suggestion,
		Applied:    false,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return "", fmt.Errorf("failed to log modification: %w", err)
	}

	return suggestion, nil
}

// Regenerate applies a modification description to an existing recipe,
// overwriting it in place with the regenerated body.
func (s *GeneratorService) Regenerate(ctx context.Context, userID, recipeID uuid.UUID, modifications string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}

	payload, err := s.llm.RegenerateRecipe(ctx, &recipe, modifications)
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate recipe: %w", err)
	}

	data, err := ParseRecipe(payload)
	if err != nil {
		return nil, err
	}

	recipe.Title = data.Title
	recipe.Description = data.Description
	recipe.PrepTime = int(data.PrepTime)
	recipe.CookTime = int(data.CookTime)
	recipe.TotalTime = int(data.TotalTime)
	recipe.Servings = int(data.Servings)
	recipe.Difficulty = data.Difficulty
	recipe.Cuisine = data.Cuisine
	recipe.Ingredients = models.IngredientList(data.Ingredients)
	recipe.Instructions = models.JSONBStringArray(data.Instructions)
	recipe.Tips = data.Tips

	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	entry := models.RecipeModification{
		RecipeID:   recipeID,
		UserID:     userID,
		UserQuery:  modifications,
		AIResponse: payload,
		Applied:    true,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to log modification: %w", err)
	}

	return &recipe, nil
}
