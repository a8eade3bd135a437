package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdduha/genai-relay/internal/config"
	"github.com/kdduha/genai-relay/internal/models"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Generator produces text from an ordered list of prompt parts.
type Generator interface {
	Generate(ctx context.Context, parts []models.Part) (string, error)
}

// New builds the generator for cfg.Provider.
func New(ctx context.Context, cfg config.ModelConfig) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini, "google":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Name)
	case ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.OpenAIBaseURL, cfg.Name), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
