package service

import (
	"context"

	"instantchef/internal/models"
	"instantchef/internal/types"
)

// CompletionClient is the surface of the hosted completion API the
// generation flows depend on. Satisfied by LLMService and by test doubles.
type CompletionClient interface {
	GenerateRecipe(ctx context.Context, prompt string) (string, error)
	SuggestModification(ctx context.Context, recipe *models.Recipe, query string) (string, error)
	RegenerateRecipe(ctx context.Context, recipe *models.Recipe, modifications string) (string, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
