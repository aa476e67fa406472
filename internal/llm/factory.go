package llm

import (
	"fmt"

	"github.com/nealxu/bicommit/internal/config"
)

// NewProvider creates a Provider from resolved configuration. The variant
// is selected once at startup and never re-evaluated mid-session.
func NewProvider(cfg *config.Config, apiKey string) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(apiKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
