// Package llm wraps the chat completion services prompts can be polished
// with. Each service implements Provider; NewProvider picks one from the
// config.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty completion")

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const defaultMaxTokens = 2048

type Provider interface {
	Name() string
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	// Ping reports whether the service is reachable with the configured
	// credentials.
	Ping(ctx context.Context) error
}

type CompletionRequest struct {
	// Model overrides the provider's configured model when set.
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    string
	Content string
}

type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewRequest builds a system plus user exchange with the default limits.
func NewRequest(model string, systemPrompt, userPrompt string) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: 0.7,
	}
}

// splitSystem separates the system prompt from the conversation.
func splitSystem(messages []Message) (string, []Message) {
	var system string
	var rest []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}

func pickModel(requested, fallback string) string {
	if requested != "" {
		return requested
	}
	return fallback
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Minute}
}

// StatusError is a non-2xx answer from a service without an SDK.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s error (status %d)", e.Service, e.Code)
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Service, e.Code, e.Body)
}

// jsonAPI sends JSON requests to one service.
type jsonAPI struct {
	service string
	baseURL string
	header  http.Header
	client  *http.Client
}

func newJSONAPI(service, baseURL string, header http.Header) *jsonAPI {
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json")
	return &jsonAPI{service: service, baseURL: baseURL, header: header, client: newHTTPClient()}
}

// call sends in (when non-nil) to path and decodes the reply into out (when
// non-nil). A non-2xx reply yields a *StatusError.
func (api *jsonAPI) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, api.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header = api.header.Clone()

	resp, err := api.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", api.service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Service: api.service, Code: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", api.service, err)
	}
	return nil
}

func statusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
