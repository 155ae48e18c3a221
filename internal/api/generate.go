package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"instantchef/internal/models"
	"instantchef/internal/prompt"
	"instantchef/internal/service"
)

// GenerateHandler handles recipe generation, modification suggestions,
// regeneration and the usage query.
type GenerateHandler struct {
	generator *service.GeneratorService
	quota     *service.QuotaService
}

func NewGenerateHandler(generator *service.GeneratorService, quota *service.QuotaService) *GenerateHandler {
	return &GenerateHandler{generator: generator, quota: quota}
}

var generationTypes = map[prompt.GenerationType]bool{
	prompt.TypeRandom:   true,
	prompt.TypeTimeline: true,
	prompt.TypeProtein:  true,
	prompt.TypeCuisine:  true,
	prompt.TypePantry:   true,
}

type generatedRecipe struct {
	models.Recipe
	PreferencesApplied    bool     `json:"preferences_applied"`
	PreferencesOverridden []string `json:"preferences_overridden,omitempty"`
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Type           string   `json:"type" binding:"required"`
		TimeLimit      int      `json:"timeLimit"`
		Protein        string   `json:"protein"`
		Cuisine        string   `json:"cuisine"`
		UsePreferences bool     `json:"usePreferences"`
		PantryItems    []string `json:"pantryItems"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genType := prompt.GenerationType(req.Type)
	if !generationTypes[genType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generation type"})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), userID, service.GenerateParams{
		Type:           genType,
		TimeLimit:      req.TimeLimit,
		Protein:        req.Protein,
		Cuisine:        req.Cuisine,
		UsePreferences: req.UsePreferences,
		PantryItems:    req.PantryItems,
	})
	if err != nil {
		if errors.Is(err, service.ErrDailyLimitReached) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": generatedRecipe{
		Recipe:                *result.Recipe,
		PreferencesApplied:    result.PreferencesApplied,
		PreferencesOverridden: result.PreferencesOverridden,
	}})
}

func (h *GenerateHandler) Modify(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		RecipeID string `json:"recipe_id" binding:"required"`
		Query    string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe_id"})
		return
	}

	suggestion, err := h.generator.Suggest(c.Request.Context(), userID, recipeID, req.Query)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate modification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modification": suggestion})
}

func (h *GenerateHandler) Regenerate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		RecipeID      string `json:"recipe_id" binding:"required"`
		Modifications string `json:"modifications" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe_id"})
		return
	}

	recipe, err := h.generator.Regenerate(c.Request.Context(), userID, recipeID, req.Modifications)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *GenerateHandler) Usage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	used, remaining, limit, err := h.quota.Usage(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check usage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"used":      used,
		"remaining": remaining,
		"limit":     limit,
	})
}
