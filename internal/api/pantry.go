package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"instantchef/internal/service"
)

// PantryHandler serves pantry item CRUD.
type PantryHandler struct {
	pantry *service.PantryService
}

func NewPantryHandler(pantry *service.PantryService) *PantryHandler {
	return &PantryHandler{pantry: pantry}
}

func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.pantry.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pantry items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PantryHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Name       string `json:"name" binding:"required"`
		Category   string `json:"category"`
		Quantity   string `json:"quantity"`
		Unit       string `json:"unit"`
		ExpiryDate string `json:"expiry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expiry *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiryDate)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.ExpiryDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry_date"})
				return
			}
		}
		expiry = &parsed
	}

	item, err := h.pantry.Create(c.Request.Context(), userID, req.Name, req.Category, req.Quantity, req.Unit, expiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pantry item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *PantryHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.pantry.Delete(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pantry item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
