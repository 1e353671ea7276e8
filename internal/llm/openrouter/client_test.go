package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
)

func newTestClient(url string) *Client {
	return NewClient(&Config{APIKey: "test-key", BaseURL: url, Model: "openai/gpt-3.5-turbo"})
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"model": "openai/gpt-3.5-turbo",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "What is a goroutine?"}},
			},
			"usage": map[string]int{"total_tokens": 42},
		})
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Complete(context.Background(), "next question please", "req-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "next question please", gotBody.Messages[0].Content)
	assert.InDelta(t, 0.7, gotBody.Temperature, 0.001)
	assert.Equal(t, 1000, gotBody.MaxTokens)
	assert.Equal(t, "What is a goroutine?", out.Content)
	assert.Equal(t, 42, out.TokensUsed)
}

func TestCompleteAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), "prompt", "req-1")
	var perr *llm.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, llm.ErrCodeAPIKey, perr.Code)
}

func TestCompleteRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), "prompt", "req-1")
	var perr *llm.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, llm.ErrCodeRateLimit, perr.Code)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), "prompt", "req-1")
	var perr *llm.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, llm.ErrCodeServiceDown, perr.Code)
}

func TestNewConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	_, err := NewConfig()
	assert.Error(t, err)

	t.Setenv("OPENROUTER_API_KEY", "k")
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, defaultModel, cfg.Model)
}
