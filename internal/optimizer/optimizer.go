package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/llm"
	"github.com/sant0-9/promptme/internal/prompts"
)

// ErrEmptyCompletion is returned when the completion service answers with
// nothing but whitespace.
var ErrEmptyCompletion = errors.New("completion service returned no text")

const (
	temperature        = 0.7
	optimizeTokens     = 2000
	enhanceInputTokens = 1000
	refineQueryTokens  = 500
)

// Optimizer polishes prompts through a completion service.
type Optimizer struct {
	provider llm.Provider
	model    string
}

// New creates an optimizer. model may be empty to use the provider default.
func New(provider llm.Provider, model string) *Optimizer {
	return &Optimizer{
		provider: provider,
		model:    model,
	}
}

// Optimize rewrites a flattened CRAFT prompt for targetModel.
func (o *Optimizer) Optimize(ctx context.Context, craftPrompt, targetModel string) (string, error) {
	return o.complete(ctx, prompts.BuildOptimizePrompt(targetModel), craftPrompt, optimizeTokens)
}

// Enhance improves a free-form prompt written for template. In structured
// mode the prompt is first wrapped in a CRAFT record and condensed to prose,
// then optimized like a CRAFT prompt.
func (o *Optimizer) Enhance(ctx context.Context, prompt, template, targetModel string, structured bool) (string, error) {
	if structured {
		prose := craft.Prose(craft.Wrap(prompt, template))
		return o.complete(ctx, prompts.BuildOptimizePrompt(targetModel), prose, optimizeTokens)
	}
	return o.complete(ctx,
		prompts.BuildEnhancePrompt(targetModel, template),
		prompts.EnhanceUserMessage(prompt),
		optimizeTokens)
}

// EnhanceInput expands raw user input before it becomes a CRAFT record.
// Blank input is returned unchanged without calling the service.
func (o *Optimizer) EnhanceInput(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return input, nil
	}
	return o.complete(ctx,
		prompts.BuildEnhanceInputPrompt(),
		prompts.EnhanceInputUserMessage(input),
		enhanceInputTokens)
}

// RefineQuery merges a free-text query with its follow-up answers into a
// single query.
func (o *Optimizer) RefineQuery(ctx context.Context, query string, answers map[string]string) (string, error) {
	return o.complete(ctx,
		prompts.BuildRefineQueryPrompt(),
		prompts.RefineQueryUserMessage(query, answers),
		refineQueryTokens)
}

func (o *Optimizer) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	req := llm.NewRequest(o.model, system, user)
	req.MaxTokens = maxTokens
	req.Temperature = temperature

	resp, err := o.provider.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return "", fmt.Errorf("%s: %w", o.provider.Name(), ErrEmptyCompletion)
		}
		return "", err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", fmt.Errorf("%s: %w", o.provider.Name(), ErrEmptyCompletion)
	}
	return text, nil
}
