package tui

import (
	"fmt"
	"strings"
)

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// contextLimit returns the context window size for a target model
func contextLimit(model string) int {
	model = strings.ToLower(model)

	switch {
	case strings.HasPrefix(model, "claude"):
		return 200000
	case strings.HasPrefix(model, "o1"), strings.HasPrefix(model, "o3"):
		return 200000
	case strings.Contains(model, "gpt-4o"), strings.Contains(model, "gpt-4-turbo"):
		return 128000
	case strings.Contains(model, "gpt-4"):
		return 8000
	case strings.Contains(model, "gpt-3.5"):
		return 16000
	case strings.HasPrefix(model, "pplx"):
		return 4000
	case strings.Contains(model, "gemini"):
		return 32000
	case model == "copilot":
		return 8000
	}

	// Default fallback
	return 8000
}

// tokenSummary describes how much of the model's window a prompt uses.
func tokenSummary(prompt, model string) string {
	n := estimateTokens(prompt)
	pct := float64(n) / float64(contextLimit(model)) * 100
	return fmt.Sprintf("~%d tokens (%.1f%% of %s context)", n, pct, model)
}
