package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider targets OpenRouter's OpenAI-compatible endpoint. Model
// IDs are vendor-qualified ("google/gemini-2.5-flash") and never remapped.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, BaseURL: baseURL})
	if err != nil {
		return nil, err
	}
	inner.model = cfg.Model
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
