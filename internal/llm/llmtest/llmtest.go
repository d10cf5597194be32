// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/promptme/internal/llm"
)

// Provider answers every request with Reply, or fails with Err. Requests
// are recorded in order.
type Provider struct {
	Reply string
	Err   error
	// Respond, when set, overrides Reply and Err.
	Respond func(req *llm.CompletionRequest) (string, error)

	mu       sync.Mutex
	requests []*llm.CompletionRequest
}

func (p *Provider) Name() string {
	return "fake"
}

func (p *Provider) Ping(context.Context) error {
	return p.Err
}

func (p *Provider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply, err := p.Reply, p.Err
	if p.Respond != nil {
		reply, err = p.Respond(req)
	}
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Content: reply, Model: req.Model}, nil
}

// Requests returns the recorded requests.
func (p *Provider) Requests() []*llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*llm.CompletionRequest(nil), p.requests...)
}

// Last returns the most recent request, or nil.
func (p *Provider) Last() *llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return nil
	}
	return p.requests[len(p.requests)-1]
}

// System returns the system message of req.
func System(req *llm.CompletionRequest) string {
	for _, m := range req.Messages {
		if m.Role == "system" {
			return m.Content
		}
	}
	return ""
}

// User returns the last user message of req.
func User(req *llm.CompletionRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			return req.Messages[i].Content
		}
	}
	return ""
}
