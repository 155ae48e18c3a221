package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instantchef/internal/service"
)

// AccountHandler serves account-level operations.
type AccountHandler struct {
	export *service.ExportService
}

func NewAccountHandler(export *service.ExportService) *AccountHandler {
	return &AccountHandler{export: export}
}

// Export returns the user's full account data as a downloadable JSON document.
func (h *AccountHandler) Export(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	data, err := h.export.Export(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export account data"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="account-export.json"`)
	c.JSON(http.StatusOK, data)
}
