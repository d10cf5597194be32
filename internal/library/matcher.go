package library

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/llm"
)

// Matcher finds the template that best fits a free-text request.
type Matcher struct {
	provider llm.Provider
	model    string
	index    *Index
}

// NewMatcher creates a matcher over the built-in templates and idx, which
// may be nil.
func NewMatcher(provider llm.Provider, model string, idx *Index) *Matcher {
	return &Matcher{
		provider: provider,
		model:    model,
		index:    idx,
	}
}

// MatchResult contains the matching result
type MatchResult struct {
	Name       string
	Builtin    bool
	Confidence float64
}

type candidate struct {
	name        string
	description string
	builtin     bool
}

// Match asks the completion service for the best template. It returns nil
// when nothing fits with confidence of at least 0.5 or the answer cannot be
// parsed.
func (m *Matcher) Match(ctx context.Context, request string) (*MatchResult, error) {
	candidates := m.candidates()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := m.provider.Complete(ctx, &llm.CompletionRequest{
		Model: m.model,
		Messages: []llm.Message{
			{Role: "user", Content: buildMatchingPrompt(request, candidates)},
		},
		MaxTokens:   100,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	return parseMatch(resp.Content, candidates), nil
}

func (m *Matcher) candidates() []candidate {
	var out []candidate
	for _, t := range craft.Templates() {
		desc := "general request"
		if qs := t.Questions(); len(qs) > 0 {
			desc = "asks for " + strings.Join(qs, ", ")
		}
		out = append(out, candidate{name: t.Name(), description: desc, builtin: true})
	}
	for _, meta := range m.index.All() {
		out = append(out, candidate{name: meta.Name, description: meta.Description})
	}
	return out
}

func buildMatchingPrompt(request string, candidates []candidate) string {
	var sb strings.Builder
	sb.WriteString("Match this prompt request to the best template.\n\n")
	sb.WriteString(fmt.Sprintf("Request: \"%s\"\n\n", request))
	sb.WriteString("Available templates:\n")

	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", c.name, c.description))
	}

	sb.WriteString("\nRespond with JSON only: {\"template\": \"name-or-none\", \"confidence\": 0.0-1.0}")
	sb.WriteString("\nUse \"none\" if no template matches well (confidence < 0.5)")

	return sb.String()
}

func parseMatch(content string, candidates []candidate) *MatchResult {
	var result struct {
		Template   string  `json:"template"`
		Confidence float64 `json:"confidence"`
	}

	if err := json.Unmarshal([]byte(stripFence(content)), &result); err != nil {
		return nil
	}

	if result.Template == "none" || result.Template == "" || result.Confidence < 0.5 {
		return nil
	}

	for _, c := range candidates {
		if strings.EqualFold(c.name, strings.TrimSpace(result.Template)) {
			return &MatchResult{
				Name:       c.name,
				Builtin:    c.builtin,
				Confidence: result.Confidence,
			}
		}
	}
	return nil
}

// stripFence removes a surrounding markdown code fence.
func stripFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	var kept []string
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "```") {
			inBlock = !inBlock
			continue
		}
		if inBlock {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
