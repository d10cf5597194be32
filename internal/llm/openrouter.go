package llm

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider routes requests to many vendors through one
// OpenAI-compatible API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(apiKey, model, baseURL string) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return &OpenRouterProvider{newOpenAICompatible(apiKey, pickModel(model, "meta-llama/llama-3.1-70b-instruct"), baseURL)}
}

func (o *OpenRouterProvider) Name() string { return "openrouter" }
