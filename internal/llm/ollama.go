package llm

import (
	"context"
	"fmt"
	"net/http"
)

const ollamaHost = "http://localhost:11434"

// OllamaProvider talks to a local Ollama server through its native chat API.
type OllamaProvider struct {
	host  string
	model string
	api   *jsonAPI
}

func NewOllamaProvider(host, model string) *OllamaProvider {
	if host == "" {
		host = ollamaHost
	}
	return &OllamaProvider{
		host:  host,
		model: model,
		api:   newJSONAPI("ollama", host, nil),
	}
}

func (o *OllamaProvider) Name() string { return "ollama" }

func (o *OllamaProvider) Ping(ctx context.Context) error {
	if err := o.api.call(ctx, http.MethodGet, "/api/tags", nil, nil); err != nil {
		if statusOf(err) != 0 {
			return err
		}
		return fmt.Errorf("cannot connect to Ollama at %s: %w", o.host, err)
	}
	return nil
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  struct {
		Temperature float64 `json:"temperature,omitempty"`
		NumPredict  int     `json:"num_predict,omitempty"`
	} `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Model      string        `json:"model"`
	Message    ollamaMessage `json:"message"`
	DoneReason string        `json:"done_reason,omitempty"`
}

func (o *OllamaProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	in := ollamaChatRequest{Model: pickModel(req.Model, o.model)}
	in.Options.Temperature = req.Temperature
	in.Options.NumPredict = req.MaxTokens
	for _, m := range req.Messages {
		in.Messages = append(in.Messages, ollamaMessage(m))
	}

	var out ollamaChatResponse
	if err := o.api.call(ctx, http.MethodPost, "/api/chat", in, &out); err != nil {
		return nil, err
	}
	if out.Message.Content == "" {
		return nil, fmt.Errorf("no response from ollama: %w", ErrEmptyResponse)
	}

	return &CompletionResponse{
		Content:      out.Message.Content,
		Model:        out.Model,
		FinishReason: out.DoneReason,
	}, nil
}
