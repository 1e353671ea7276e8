// Package openrouter implements the llm.Provider interface against the
// OpenRouter chat-completions API (OpenAI-compatible).
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
)

const providerName = "openrouter"

type Client struct {
	cfg  *Config
	http *http.Client
}

// NewClient builds an OpenRouter client from the given config.
func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) GetProviderName() string { return providerName }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends the prompt as a single user message and returns the first
// choice.
func (c *Client) Complete(ctx context.Context, prompt, requestID string) (*llm.Completion, error) {
	payload := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &llm.ProviderError{Provider: providerName, Code: llm.ErrCodeInvalidInput, Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &llm.ProviderError{Provider: providerName, Code: llm.ErrCodeServiceDown, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &llm.ProviderError{Provider: providerName, Code: llm.ErrCodeAPIKey, Message: "authentication failed"}
	case http.StatusTooManyRequests:
		return nil, &llm.ProviderError{Provider: providerName, Code: llm.ErrCodeRateLimit, Message: "rate limit exceeded"}
	default:
		return nil, &llm.ProviderError{Provider: providerName, Code: llm.ErrCodeServiceDown, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &llm.ProviderError{Provider: providerName, Code: llm.ErrCodeServiceDown, Message: "failed to decode response", Err: err}
	}
	if len(parsed.Choices) == 0 {
		return nil, &llm.ProviderError{Provider: providerName, Code: llm.ErrCodeServiceDown, Message: "response contained no choices"}
	}

	return &llm.Completion{
		Content:    parsed.Choices[0].Message.Content,
		Model:      parsed.Model,
		TokensUsed: parsed.Usage.TotalTokens,
	}, nil
}
