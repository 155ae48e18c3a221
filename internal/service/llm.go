package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"instantchef/internal/models"
)

// LLMService handles interactions with an OpenAI-compatible chat completions API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("OPENAI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("OPENAI_API_URL")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4.1"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: http.DefaultClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
}

const generateSystemPrompt = "You are a creative professional chef specializing in diverse Instant Pot recipes. Generate unique, detailed, and practical recipes that are easy to follow using ingredients readily available in typical US grocery stores. CRITICAL REQUIREMENTS: 1) NEVER include ingredients marked as allergies or dislikes - these are STRICT restrictions. 2) When preferred proteins are specified, you MUST use one of them as the main protein. 3) When preferred cuisines are specified, you MUST make the recipe that cuisine style. 4) Liked ingredients are suggestions only - include them if they fit naturally. 5) Always follow dietary restrictions (vegan/vegetarian) unless explicitly overridden. Prioritize variety and creativity - avoid repetitive dishes like basic beef stew or plain chicken and rice. Draw inspiration from various cuisines but adapt them to use common American grocery store ingredients. Always respond with valid JSON."

const suggestSystemPrompt = "You are a helpful chef assistant. Suggest modifications to Instant Pot recipes based on user requests. Be specific and practical."

const regenerateSystemPrompt = "You are a professional chef specializing in Instant Pot recipes. Modify recipes based on user requests while maintaining the recipe structure and format. Always respond with valid JSON."

// GenerateRecipe sends a generation prompt and returns the raw JSON recipe payload.
func (s *LLMService) GenerateRecipe(ctx context.Context, prompt string) (string, error) {
	return s.complete(ctx, generateSystemPrompt, prompt, true, 0.8, 0)
}

// SuggestModification asks for a free-text modification suggestion for a recipe.
// The recipe itself is not changed.
func (s *LLMService) SuggestModification(ctx context.Context, recipe *models.Recipe, query string) (string, error) {
	ingredients, _ := json.Marshal(recipe.Ingredients)
	instructions, _ := json.Marshal(recipe.Instructions)
	user := fmt.Sprintf("Recipe: %s\nIngredients: %s\nInstructions: %s\n\nUser request: %s\n\nProvide a specific modification suggestion.",
		recipe.Title, ingredients, instructions, query)

	return s.complete(ctx, suggestSystemPrompt, user, false, 0.7, 500)
}

// RegenerateRecipe asks for a complete replacement recipe body applying the
// given modifications, in the same JSON schema as initial generation.
func (s *LLMService) RegenerateRecipe(ctx context.Context, recipe *models.Recipe, modifications string) (string, error) {
	ingredients, _ := json.Marshal(recipe.Ingredients)
	instructions, _ := json.Marshal(recipe.Instructions)
	user := fmt.Sprintf(`Here is an Instant Pot recipe:
Title: %s
Description: %s
Ingredients: %s
Instructions: %s
Tips: %s

Apply these modifications: %s

Return the complete modified recipe in the same JSON format with all fields filled out.`,
		recipe.Title, recipe.Description, ingredients, instructions, recipe.Tips, modifications)

	return s.complete(ctx, regenerateSystemPrompt, user, true, 0.7, 0)
}

func (s *LLMService) complete(ctx context.Context, system, user string, jsonResponse bool, temperature float64, maxTokens int) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if jsonResponse {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// FlexInt can handle both string and number values for numeric recipe fields
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as number first
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexInt(int(num))
		return nil
	}

	// Try to unmarshal as string like "15" or "15 minutes"
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		fields := strings.Fields(str)
		if len(fields) > 0 {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				*f = FlexInt(n)
				return nil
			}
		}
		*f = 0
		return nil
	}

	return fmt.Errorf("invalid numeric value: %s", string(data))
}

// RecipeData represents the structure of a recipe as returned by the LLM
type RecipeData struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	PrepTime     FlexInt             `json:"prepTime"`
	CookTime     FlexInt             `json:"cookTime"`
	TotalTime    FlexInt             `json:"totalTime"`
	Servings     FlexInt             `json:"servings"`
	Difficulty   string              `json:"difficulty"`
	Cuisine      string              `json:"cuisine"`
	Ingredients  []models.Ingredient `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Tips         string              `json:"tips"`
}

// ParseRecipe decodes and validates a recipe payload before anything is
// persisted. A payload missing its title, ingredients or instructions is
// rejected rather than stored half-empty.
func ParseRecipe(payload string) (*RecipeData, error) {
	var data RecipeData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("failed to parse recipe payload: %w", err)
	}

	if strings.TrimSpace(data.Title) == "" {
		return nil, fmt.Errorf("recipe payload missing title")
	}
	if len(data.Ingredients) == 0 {
		return nil, fmt.Errorf("recipe payload missing ingredients")
	}
	if len(data.Instructions) == 0 {
		return nil, fmt.Errorf("recipe payload missing instructions")
	}
	if data.PrepTime < 0 || data.CookTime < 0 || data.TotalTime < 0 || data.Servings < 0 {
		return nil, fmt.Errorf("recipe payload has negative numeric fields")
	}

	return &data, nil
}
