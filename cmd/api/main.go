package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"instantchef/config"
	"instantchef/internal/api"
	"instantchef/internal/middleware"
	"instantchef/internal/prompt"
	"instantchef/internal/router"
	"instantchef/internal/server"
	"instantchef/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	llm, err := service.NewLLMService()
	if err != nil {
		log.Fatalf("failed to initialize completion client: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	quotaService := service.NewQuotaService(db)
	recipeService := service.NewRecipeService(db)
	prefService := service.NewPreferenceService(db)
	pantryService := service.NewPantryService(db)
	exportService := service.NewExportService(db, recipeService, prefService, pantryService)

	builder := prompt.NewBuilder(prompt.DefaultVocabulary(), rand.New(rand.NewSource(time.Now().UnixNano())))
	generator := service.NewGeneratorService(db, llm, quotaService, recipeService, builder)

	var burstLimiter *middleware.RateLimiter
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, burst limiting disabled: %v", err)
	} else {
		burstLimiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	handlers := router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Generate:   api.NewGenerateHandler(generator, quotaService),
		Recipe:     api.NewRecipeHandler(recipeService),
		Preference: api.NewPreferenceHandler(prefService),
		Pantry:     api.NewPantryHandler(pantryService),
		Account:    api.NewAccountHandler(exportService),
	}

	r := router.SetupRouter(db, handlers, authService, burstLimiter)
	srv := server.New(r)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(cfg.ServerPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}
	log.Println("server stopped")
}
