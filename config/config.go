package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port  string
	Debug bool

	// AI matching service (OpenAI-compatible chat completions endpoint)
	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	// Timeouts and limits
	HTTPTimeoutSeconds int
	MaxUploadMB        int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// AI matching service
		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", ""),

		// Timeouts and limits
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 600),
		MaxUploadMB:        getEnvInt("MAX_UPLOAD_MB", 10),
	}
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.AIBaseURL == "" {
		return &ConfigError{Field: "AI_BASE_URL", Message: "AI_BASE_URL is required for resume matching"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
