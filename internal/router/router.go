package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"instantchef/internal/api"
	"instantchef/internal/middleware"
	"instantchef/internal/service"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth       *api.AuthHandler
	Generate   *api.GenerateHandler
	Recipe     *api.RecipeHandler
	Preference *api.PreferenceHandler
	Pantry     *api.PantryHandler
	Account    *api.AccountHandler
}

// SetupRouter configures the application routes. The burst limiter may be nil
// when Redis is not configured.
func SetupRouter(db *gorm.DB, h Handlers, authService service.IAuthService, burstLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/api/v1/health", func(c *gin.Context) {
		status := "ok"
		dbStatus := "connected"
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "error"
			dbStatus = "disconnected"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "instantchef",
			"database":  dbStatus,
		})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		prefs := protected.Group("/preferences")
		{
			prefs.GET("", h.Preference.Get)
			prefs.PUT("", h.Preference.Put)
		}

		likes := protected.Group("/likes-dislikes")
		{
			likes.GET("", h.Preference.GetLikesDislikes)
			likes.POST("", h.Preference.Vote)
			likes.PUT("", h.Preference.PutLikesDislikes)
			likes.DELETE("", h.Preference.DeleteIngredient)
		}

		pantry := protected.Group("/pantry")
		{
			pantry.GET("", h.Pantry.List)
			pantry.POST("", h.Pantry.Create)
			pantry.DELETE("/:id", h.Pantry.Delete)
		}

		recipes := protected.Group("/recipes")
		{
			generation := recipes.Group("")
			if burstLimiter != nil {
				generation.Use(burstLimiter.Middleware())
			}
			generation.POST("/generate", h.Generate.Generate)
			generation.POST("/modify", h.Generate.Modify)
			generation.POST("/regenerate", h.Generate.Regenerate)

			recipes.GET("/usage", h.Generate.Usage)
			recipes.GET("/recent", h.Recipe.Recent)
			recipes.GET("/saved", h.Recipe.Saved)
			recipes.GET("/:id", h.Recipe.GetRecipe)
			recipes.PATCH("/:id/customize", h.Recipe.Customize)
			recipes.POST("/:id/save", h.Recipe.Save)
			recipes.DELETE("/:id/save", h.Recipe.Unsave)
			recipes.DELETE("/:id/recent", h.Recipe.RemoveRecent)
		}

		protected.GET("/account/export", h.Account.Export)
	}

	return router
}
