package llm

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider is Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model, baseURL string) *GroqProvider {
	if baseURL == "" {
		baseURL = groqBaseURL
	}
	return &GroqProvider{newOpenAICompatible(apiKey, pickModel(model, "llama-3.1-70b-versatile"), baseURL)}
}

func (g *GroqProvider) Name() string { return "groq" }
