package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
	anthropicModel   = "claude-3-5-sonnet-20241022"
)

// AnthropicProvider calls the Messages API directly.
type AnthropicProvider struct {
	model string
	api   *jsonAPI
}

func NewAnthropicProvider(apiKey, model, baseURL string) *AnthropicProvider {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	header := http.Header{}
	header.Set("x-api-key", apiKey)
	header.Set("anthropic-version", anthropicVersion)

	return &AnthropicProvider{
		model: pickModel(model, anthropicModel),
		api:   newJSONAPI("anthropic", baseURL, header),
	}
}

func (a *AnthropicProvider) Name() string { return "anthropic" }

// Ping sends a one-token message since the API has no health endpoint. A
// 400 still proves the key and endpoint work.
func (a *AnthropicProvider) Ping(ctx context.Context) error {
	in := anthropicRequest{
		Model:     a.model,
		MaxTokens: 1,
		Messages:  []anthropicMessage{{Role: RoleUser, Content: "hi"}},
	}
	err := a.api.call(ctx, http.MethodPost, "/messages", in, nil)
	switch statusOf(err) {
	case 0:
		if err != nil {
			return fmt.Errorf("cannot connect to Anthropic API: %w", err)
		}
		return nil
	case http.StatusBadRequest:
		return nil
	case http.StatusUnauthorized:
		return errors.New("invalid API key")
	default:
		return err
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// text joins the text blocks of the reply.
func (r *anthropicResponse) text() string {
	var b strings.Builder
	for _, c := range r.Content {
		if c.Type == "" || c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

func (a *AnthropicProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	system, turns := splitSystem(req.Messages)

	in := anthropicRequest{
		Model:       pickModel(req.Model, a.model),
		MaxTokens:   req.MaxTokens,
		System:      system,
		Temperature: req.Temperature,
	}
	if in.MaxTokens == 0 {
		in.MaxTokens = defaultMaxTokens
	}
	for _, m := range turns {
		in.Messages = append(in.Messages, anthropicMessage(m))
	}

	var out anthropicResponse
	if err := a.api.call(ctx, http.MethodPost, "/messages", in, &out); err != nil {
		return nil, err
	}
	content := out.text()
	if content == "" {
		return nil, fmt.Errorf("no response from Anthropic: %w", ErrEmptyResponse)
	}

	return &CompletionResponse{
		Content:      content,
		Model:        in.Model,
		FinishReason: out.StopReason,
		Usage: Usage{
			PromptTokens:     out.Usage.InputTokens,
			CompletionTokens: out.Usage.OutputTokens,
			TotalTokens:      out.Usage.InputTokens + out.Usage.OutputTokens,
		},
	}, nil
}
