package llm

import (
	"context"
	"fmt"

	"github.com/sant0-9/promptme/internal/config"
)

// constructor builds a provider from the config and the endpoint to use.
type constructor func(cfg *config.Config, baseURL string) (Provider, error)

var constructors = map[string]constructor{
	"ollama": func(cfg *config.Config, baseURL string) (Provider, error) {
		return NewOllamaProvider(baseURL, cfg.Model), nil
	},
	"openai": func(cfg *config.Config, baseURL string) (Provider, error) {
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, baseURL), nil
	},
	"groq": func(cfg *config.Config, baseURL string) (Provider, error) {
		return NewGroqProvider(cfg.APIKey, cfg.Model, baseURL), nil
	},
	"openrouter": func(cfg *config.Config, baseURL string) (Provider, error) {
		return NewOpenRouterProvider(cfg.APIKey, cfg.Model, baseURL), nil
	},
	"anthropic": func(cfg *config.Config, baseURL string) (Provider, error) {
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, baseURL), nil
	},
	"gemini": func(cfg *config.Config, baseURL string) (Provider, error) {
		return NewGeminiProvider(context.Background(), cfg.APIKey, cfg.Model, baseURL)
	},
	"custom": func(cfg *config.Config, baseURL string) (Provider, error) {
		if baseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(baseURL, cfg.APIKey, cfg.Model), nil
	},
}

// NewProvider creates the provider named by cfg.Provider. Services listed in
// config.Providers that need a key fail without one.
func NewProvider(cfg *config.Config) (Provider, error) {
	build, ok := constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	baseURL := cfg.BaseURL
	if info := config.GetProvider(cfg.Provider); info != nil {
		if info.NeedsAPIKey && cfg.APIKey == "" {
			return nil, fmt.Errorf("%s requires an API key", cfg.Provider)
		}
		if baseURL == "" {
			baseURL = info.BaseURL
		}
	}
	return build(cfg, baseURL)
}
