package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"instantchef/internal/models"
	"instantchef/internal/service"
)

// PreferenceHandler serves the preference record and the liked/disliked
// ingredient lists.
type PreferenceHandler struct {
	prefs *service.PreferenceService
}

func NewPreferenceHandler(prefs *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	prefs, err := h.prefs.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"preferences": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func (h *PreferenceHandler) Put(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		MinCookTime         int      `json:"min_cook_time"`
		MaxCookTime         int      `json:"max_cook_time"`
		IsVegan             bool     `json:"is_vegan"`
		IsVegetarian        bool     `json:"is_vegetarian"`
		Allergies           []string `json:"allergies"`
		DietaryRestrictions []string `json:"dietary_restrictions"`
		PreferredProteins   []string `json:"preferred_proteins"`
		PreferredCuisines   []string `json:"preferred_cuisines"`
		MaxRecentRecipes    int      `json:"max_recent_recipes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.prefs.Upsert(c.Request.Context(), userID, &models.UserPreferences{
		MinCookTime:         req.MinCookTime,
		MaxCookTime:         req.MaxCookTime,
		IsVegan:             req.IsVegan,
		IsVegetarian:        req.IsVegetarian,
		Allergies:           models.JSONBStringArray(req.Allergies),
		DietaryRestrictions: models.JSONBStringArray(req.DietaryRestrictions),
		PreferredProteins:   models.JSONBStringArray(req.PreferredProteins),
		PreferredCuisines:   models.JSONBStringArray(req.PreferredCuisines),
		MaxRecentRecipes:    req.MaxRecentRecipes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func (h *PreferenceHandler) GetLikesDislikes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	liked, disliked, err := h.prefs.LikesDislikes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked_ingredients":    liked,
		"disliked_ingredients": disliked,
	})
}

func (h *PreferenceHandler) Vote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Ingredient string `json:"ingredient" binding:"required"`
		Action     string `json:"action" binding:"required,oneof=add remove"`
		Type       string `json:"type" binding:"required,oneof=like dislike"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	liked, disliked, err := h.prefs.Vote(c.Request.Context(), userID, req.Ingredient, req.Action, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked_ingredients":    liked,
		"disliked_ingredients": disliked,
	})
}

func (h *PreferenceHandler) PutLikesDislikes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		LikedIngredients    []string `json:"liked_ingredients"`
		DislikedIngredients []string `json:"disliked_ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	liked, disliked, err := h.prefs.SetLikesDislikes(c.Request.Context(), userID, req.LikedIngredients, req.DislikedIngredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked_ingredients":    liked,
		"disliked_ingredients": disliked,
	})
}

func (h *PreferenceHandler) DeleteIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Ingredient string `json:"ingredient" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	liked, disliked, err := h.prefs.RemoveIngredient(c.Request.Context(), userID, req.Ingredient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete preference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked_ingredients":    liked,
		"disliked_ingredients": disliked,
	})
}
