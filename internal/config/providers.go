package config

// ProviderInfo describes a completion service offered during setup.
type ProviderInfo struct {
	ID          string
	Name        string
	Description string
	NeedsAPIKey bool
	// APIKeyEnv is read when the config has no key.
	APIKeyEnv string
	SignupURL string
	// BaseURL is the endpoint used when the config sets none. Empty means
	// the client library's default.
	BaseURL      string
	Models       []string
	DefaultModel string
}

// Providers lists the services in setup order.
var Providers = []ProviderInfo{
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		BaseURL:      "http://localhost:11434",
		Models:       []string{"llama3.1:8b", "llama3.1:70b", "qwen2.5:7b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		NeedsAPIKey:  true,
		APIKeyEnv:    "OPENAI_API_KEY",
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, great writing",
		NeedsAPIKey:  true,
		APIKeyEnv:    "ANTHROPIC_API_KEY",
		SignupURL:    "https://console.anthropic.com/",
		Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		DefaultModel: "claude-3-5-sonnet-20241022",
	},
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google models, long context",
		NeedsAPIKey:  true,
		APIKeyEnv:    "GEMINI_API_KEY",
		SignupURL:    "https://aistudio.google.com/apikey",
		Models:       []string{"gemini-2.0-flash", "gemini-1.5-pro"},
		DefaultModel: "gemini-2.0-flash",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		APIKeyEnv:    "GROQ_API_KEY",
		SignupURL:    "https://console.groq.com/keys",
		BaseURL:      "https://api.groq.com/openai/v1",
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		APIKeyEnv:    "OPENROUTER_API_KEY",
		SignupURL:    "https://openrouter.ai/keys",
		BaseURL:      "https://openrouter.ai/api/v1",
		Models:       []string{"anthropic/claude-3.5-sonnet", "openai/gpt-4o", "meta-llama/llama-3.1-70b"},
		DefaultModel: "meta-llama/llama-3.1-70b-instruct",
	},
}

// GetProvider returns the service with the given ID, or nil.
func GetProvider(id string) *ProviderInfo {
	for i := range Providers {
		if Providers[i].ID == id {
			return &Providers[i]
		}
	}
	return nil
}
