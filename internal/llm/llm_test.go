package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptme/internal/config"
)

func TestOpenAIComplete(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "polished"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 2, "total_tokens": 12}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o", srv.URL)
	resp, err := p.Complete(context.Background(), NewRequest("", "be brief", "hello"))
	require.NoError(t, err)

	assert.Equal(t, "polished", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 12, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestOpenAINoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIProvider("k", "", srv.URL).Complete(context.Background(), NewRequest("", "s", "u"))
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIPingUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	err := NewOpenAIProvider("bad", "", srv.URL).Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, "invalid API key", err.Error())
}

func TestAnthropicComplete(t *testing.T) {
	var got anthropicRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"content": [{"text": "done"}], "stop_reason": "end_turn", "usage": {"input_tokens": 3, "output_tokens": 4}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key", "", srv.URL)
	resp, err := p.Complete(context.Background(), NewRequest("", "system text", "user text"))
	require.NoError(t, err)

	assert.Equal(t, "done", resp.Content)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
	assert.Equal(t, "system text", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "claude-3-5-sonnet-20241022", got.Model)
}

func TestAnthropicErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	_, err := NewAnthropicProvider("key", "", srv.URL).Complete(context.Background(), NewRequest("", "s", "u"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "slow down")
}

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models": []}`))
		case "/api/chat":
			var req ollamaChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.False(t, req.Stream)
			_, _ = w.Write([]byte(`{"model": "llama3.1:8b", "message": {"role": "assistant", "content": "ok"}, "done": true, "done_reason": "stop"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.1:8b")
	require.NoError(t, p.Ping(context.Background()))

	resp, err := p.Complete(context.Background(), NewRequest("", "s", "u"))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestOllamaEmptyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model": "m", "message": {"role": "assistant", "content": ""}, "done": true}`))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "m").Complete(context.Background(), NewRequest("", "s", "u"))
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{cfg: config.Config{Provider: "ollama"}, wantName: "ollama"},
		{cfg: config.Config{Provider: "openai", APIKey: "k"}, wantName: "openai"},
		{cfg: config.Config{Provider: "groq", APIKey: "k"}, wantName: "groq"},
		{cfg: config.Config{Provider: "openrouter", APIKey: "k"}, wantName: "openrouter"},
		{cfg: config.Config{Provider: "anthropic", APIKey: "k"}, wantName: "anthropic"},
		{cfg: config.Config{Provider: "gemini", APIKey: "k"}, wantName: "gemini"},
		{cfg: config.Config{Provider: "custom", BaseURL: "http://localhost:8080/v1"}, wantName: "custom"},
		{cfg: config.Config{Provider: "openai"}, wantErr: true},
		{cfg: config.Config{Provider: "gemini"}, wantErr: true},
		{cfg: config.Config{Provider: "custom"}, wantErr: true},
		{cfg: config.Config{Provider: "mystery"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Provider, func(t *testing.T) {
			p, err := NewProvider(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestSplitSystem(t *testing.T) {
	system, rest := splitSystem([]Message{
		{Role: "system", Content: "rules"},
		{Role: "user", Content: "q"},
		{Role: "assistant", Content: "a"},
	})
	assert.Equal(t, "rules", system)
	assert.Len(t, rest, 2)
}

func TestAnthropicPing(t *testing.T) {
	tests := []struct {
		status  int
		wantErr string
	}{
		{status: http.StatusOK},
		{status: http.StatusBadRequest},
		{status: http.StatusUnauthorized, wantErr: "invalid API key"},
		{status: http.StatusInternalServerError, wantErr: "anthropic error (status 500): boom"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.status == http.StatusInternalServerError {
					_, _ = w.Write([]byte("boom\n"))
				}
			}))
			defer srv.Close()

			err := NewAnthropicProvider("key", "", srv.URL).Ping(context.Background())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestOllamaPingStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewOllamaProvider(srv.URL, "m").Ping(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "ollama", se.Service)
}

func TestNewProviderUsesConfiguredBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "via proxy"}}]}`))
	}))
	defer srv.Close()

	p, err := NewProvider(&config.Config{Provider: "groq", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), NewRequest("", "s", "u"))
	require.NoError(t, err)
	assert.Equal(t, "via proxy", resp.Content)
}
