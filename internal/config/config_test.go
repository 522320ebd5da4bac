// File path: internal/config/config_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PRODIGEN_CONFIG_FILE",
		"OPENAI_API_KEY",
		"MODEL_NAME",
		"OPENAI_ENDPOINT",
		"TEMPERATURE",
		"MAX_TOKENS",
		"OPENAI_HTTP_TIMEOUT",
		"LLM_MAX_ATTEMPTS",
		"LLM_RETRY_BACKOFF",
		"LLM_RETRY_BACKOFF_CAP",
		"PRODIGEN_LOCAL_PROVIDER",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %q", cfg.Model)
	}
	if cfg.Temperature != 0.7 {
		t.Fatalf("expected default temperature, got %v", cfg.Temperature)
	}
	if cfg.MaxTokens != 2048 {
		t.Fatalf("expected default max tokens, got %d", cfg.MaxTokens)
	}
	if cfg.MaxAttempts != 3 {
		t.Fatalf("expected default attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.RetryBackoff != 2*time.Second || cfg.RetryBackoffCap != 10*time.Second {
		t.Fatalf("unexpected backoff defaults: %v / %v", cfg.RetryBackoff, cfg.RetryBackoffCap)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	contents := `{"model": "file-model", "max_tokens": 512, "retry_backoff": "5s"}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("PRODIGEN_CONFIG_FILE", path)
	t.Setenv("MODEL_NAME", "env-model")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("TEMPERATURE", "0.2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Model != "env-model" {
		t.Fatalf("expected env to win, got %q", cfg.Model)
	}
	if cfg.MaxTokens != 512 {
		t.Fatalf("expected file max tokens, got %d", cfg.MaxTokens)
	}
	if cfg.RetryBackoff != 5*time.Second {
		t.Fatalf("expected file backoff, got %v", cfg.RetryBackoff)
	}
	if cfg.Temperature != 0.2 {
		t.Fatalf("expected env temperature, got %v", cfg.Temperature)
	}
	if cfg.APIKey != "test-key" {
		t.Fatalf("unexpected api key %q", cfg.APIKey)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MAX_TOKENS", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed MAX_TOKENS")
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error without credential")
	}
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if confErr.Setting != "OPENAI_API_KEY" {
		t.Fatalf("unexpected setting %q", confErr.Setting)
	}
}

func TestValidateAllowsLocalProvider(t *testing.T) {
	cfg := Config{LocalProvider: true}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("local provider should not require credential: %v", err)
	}
}
