// Package ai wraps the LLM providers used for article classification. Every
// provider reduces to a single free-form completion call.
package ai

import (
	"context"
	"fmt"
)

// AIProvider is the interface that all LLM providers must implement.
type AIProvider interface {
	// Complete sends one system/user prompt pair to the model and returns
	// its raw text answer.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(ctx context.Context, cfg ProviderConfig) (AIProvider, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	switch cfg.Provider {
	case "gemini":
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, maxTokens)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, maxTokens), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
