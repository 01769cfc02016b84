package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config carries the service-level knobs. Provider credentials stay in
// the provider packages; database settings stay with the database
// initializer in cmd.
type Config struct {
	Provider string

	Port           string
	AllowedOrigins []string
	JWTSecret      string

	SandboxURL     string
	SandboxTimeout time.Duration

	// RetryBackoff is the wait before the single retry of a failed
	// store write. HRRetryBackoff applies to HR question batches,
	// which historically need longer for stale auth tokens to
	// refresh. Both are configuration rather than two hard-coded
	// magic numbers.
	RetryBackoff   time.Duration
	HRRetryBackoff time.Duration

	// SessionTTL is how long an idle session stays resident before
	// the reaper evicts it; ReaperSchedule is a cron expression.
	SessionTTL     time.Duration
	ReaperSchedule string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:       getEnvOrDefault("AI_PROVIDER", "gemini"),
		Port:           getEnvOrDefault("PORT", "8080"),
		AllowedOrigins: splitCSV(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173")),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "dev"),
		SandboxURL:     getEnvOrDefault("SANDBOX_URL", "http://localhost:9090"),
		SandboxTimeout: getEnvDuration("SANDBOX_TIMEOUT", 10*time.Second),
		RetryBackoff:   getEnvDuration("STORE_RETRY_BACKOFF", time.Second),
		HRRetryBackoff: getEnvDuration("STORE_RETRY_BACKOFF_HR", 1500*time.Millisecond),
		SessionTTL:     getEnvDuration("SESSION_TTL", 2*time.Hour),
		ReaperSchedule: getEnvOrDefault("SESSION_REAPER_SCHEDULE", "*/15 * * * *"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.RetryBackoff <= 0 || config.HRRetryBackoff <= 0 {
		return errors.New("store retry backoffs must be positive durations")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
