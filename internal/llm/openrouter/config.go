package openrouter

import (
	"errors"
	"os"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "openai/gpt-3.5-turbo"
)

// Config holds the OpenRouter connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewConfig loads OpenRouter settings from the environment.
func NewConfig() (*Config, error) {
	cfg := &Config{
		APIKey:  os.Getenv("OPENROUTER_API_KEY"),
		BaseURL: os.Getenv("OPENROUTER_BASE_URL"),
		Model:   os.Getenv("OPENROUTER_MODEL"),
	}
	if cfg.APIKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY is required for the openrouter provider")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return cfg, nil
}
