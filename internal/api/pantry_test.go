package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"instantchef/internal/service"
)

func newPantryRouter(t *testing.T, db *gorm.DB, userID uuid.UUID) *gin.Engine {
	handler := NewPantryHandler(service.NewPantryService(db))

	router := gin.New()
	router.Use(asUser(userID))
	router.GET("/pantry", handler.List)
	router.POST("/pantry", handler.Create)
	router.DELETE("/pantry/:id", handler.Delete)
	return router
}

func TestPantryHandler_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	router := newPantryRouter(t, db, user.ID)

	w := performRequest(t, router, http.MethodPost, "/pantry", gin.H{
		"name":        "black beans",
		"category":    "canned",
		"quantity":    "2",
		"unit":        "cans",
		"expiry_date": "2027-03-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	item, ok := decodeBody(t, w)["item"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "black beans", item["name"])
	assert.NotEmpty(t, item["expiry_date"])

	w = performRequest(t, router, http.MethodGet, "/pantry", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, ok := decodeBody(t, w)["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestPantryHandler_CreateValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	router := newPantryRouter(t, db, user.ID)

	w := performRequest(t, router, http.MethodPost, "/pantry", gin.H{"category": "canned"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodPost, "/pantry", gin.H{
		"name":        "rice",
		"expiry_date": "next tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPantryHandler_Delete(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	router := newPantryRouter(t, db, user.ID)

	w := performRequest(t, router, http.MethodPost, "/pantry", gin.H{"name": "rice"})
	require.Equal(t, http.StatusCreated, w.Code)
	item := decodeBody(t, w)["item"].(map[string]interface{})
	itemID := item["id"].(string)

	w = performRequest(t, router, http.MethodDelete, "/pantry/"+itemID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodDelete, "/pantry/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(t, router, http.MethodDelete, "/pantry/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
