package llm

// CustomProvider is any self-hosted OpenAI-compatible endpoint.
type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newOpenAICompatible(apiKey, model, baseURL),
	}
}

func (c *CustomProvider) Name() string {
	return "custom"
}
