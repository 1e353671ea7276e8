package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the backend service configuration, loaded from the
// environment.
type Config struct {
	Port      string
	JWTSecret string

	// Postgres connection; tests substitute SQLite.
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	// Redis hand-off store.
	RedisAddr     string
	RedisPassword string

	// AI provider selection.
	Provider string

	// Stale-session reaper.
	ReaperSchedule     string
	ReaperGraceMinutes int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		JWTSecret:          getEnvOrDefault("JWT_SECRET", "dev"),
		DBHost:             getEnvOrDefault("POSTGRES_HOST", "localhost"),
		DBUser:             getEnvOrDefault("POSTGRES_USER", "postgres"),
		DBPassword:         getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
		DBName:             getEnvOrDefault("POSTGRES_DB", "mockmate"),
		DBPort:             getEnvOrDefault("POSTGRES_PORT", "5432"),
		DBSSLMode:          getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		Provider:           getEnvOrDefault("AI_PROVIDER", "openrouter"),
		ReaperSchedule:     getEnvOrDefault("REAPER_SCHEDULE", "*/10 * * * *"),
		ReaperGraceMinutes: getEnvInt("REAPER_GRACE_MINUTES", 15),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Provider {
	case "openrouter", "mock":
	default:
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: openrouter, mock")
	}
	if config.ReaperGraceMinutes < 0 {
		return errors.New("REAPER_GRACE_MINUTES must not be negative")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
