package config

import (
	"testing"
	"time"
)

func TestLoadConfig_DefaultProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Fatalf("expected provider gemini, got %s", cfg.Provider)
	}
	if cfg.RetryBackoff != time.Second {
		t.Fatalf("expected default retry backoff 1s, got %v", cfg.RetryBackoff)
	}
	if cfg.HRRetryBackoff != 1500*time.Millisecond {
		t.Fatalf("expected default HR retry backoff 1.5s, got %v", cfg.HRRetryBackoff)
	}
}

func TestLoadConfig_UnsupportedProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "unknown")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestLoadConfig_BackoffOverride(t *testing.T) {
	t.Setenv("STORE_RETRY_BACKOFF", "250ms")
	t.Setenv("STORE_RETRY_BACKOFF_HR", "2s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RetryBackoff != 250*time.Millisecond {
		t.Fatalf("expected 250ms retry backoff, got %v", cfg.RetryBackoff)
	}
	if cfg.HRRetryBackoff != 2*time.Second {
		t.Fatalf("expected 2s HR retry backoff, got %v", cfg.HRRetryBackoff)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("UNIT_TEST_ENV", "value")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "value" {
		t.Fatalf("expected env value, got %s", got)
	}

	t.Setenv("UNIT_TEST_ENV", "")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback value, got %s", got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV("http://a.example, http://b.example ,")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("splitCSV returned %v", got)
	}
}
