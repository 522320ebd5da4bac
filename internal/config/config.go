// File path: internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ConfigurationError reports a missing or malformed setting. It is fatal at
// startup; nothing retries it.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Setting, e.Reason)
}

// Config carries every runtime setting for the LLM client and pipeline. It is
// constructed once at process start and passed by reference; nothing reads the
// environment after load.
type Config struct {
	APIKey   string `json:"-"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`

	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`

	HTTPTimeout       time.Duration `json:"-"`
	HTTPTimeoutString string        `json:"http_timeout"`

	MaxAttempts int `json:"max_attempts"`

	RetryBackoff       time.Duration `json:"-"`
	RetryBackoffString string        `json:"retry_backoff"`

	RetryBackoffCap       time.Duration `json:"-"`
	RetryBackoffCapString string        `json:"retry_backoff_cap"`

	// LocalProvider switches the LLM client to the in-process stub. Meant
	// for development and tests; a missing API key is fatal without it.
	LocalProvider bool `json:"local_provider"`
}

func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.APIKey) != "" {
		result.APIKey = strings.TrimSpace(override.APIKey)
	}
	if strings.TrimSpace(override.Model) != "" {
		result.Model = strings.TrimSpace(override.Model)
	}
	if strings.TrimSpace(override.Endpoint) != "" {
		result.Endpoint = strings.TrimSpace(override.Endpoint)
	}
	if override.Temperature > 0 {
		result.Temperature = override.Temperature
	}
	if override.MaxTokens > 0 {
		result.MaxTokens = override.MaxTokens
	}
	if override.HTTPTimeout > 0 {
		result.HTTPTimeout = override.HTTPTimeout
	}
	if strings.TrimSpace(override.HTTPTimeoutString) != "" {
		result.HTTPTimeoutString = strings.TrimSpace(override.HTTPTimeoutString)
	}
	if override.MaxAttempts > 0 {
		result.MaxAttempts = override.MaxAttempts
	}
	if override.RetryBackoff > 0 {
		result.RetryBackoff = override.RetryBackoff
	}
	if strings.TrimSpace(override.RetryBackoffString) != "" {
		result.RetryBackoffString = strings.TrimSpace(override.RetryBackoffString)
	}
	if override.RetryBackoffCap > 0 {
		result.RetryBackoffCap = override.RetryBackoffCap
	}
	if strings.TrimSpace(override.RetryBackoffCapString) != "" {
		result.RetryBackoffCapString = strings.TrimSpace(override.RetryBackoffCapString)
	}
	if override.LocalProvider {
		result.LocalProvider = true
	}
	return result
}

// Load builds the configuration from an optional JSON file pointed at by
// PRODIGEN_CONFIG_FILE, overlaid with environment variables.
func Load() (Config, error) {
	cfg := Config{}
	if path := strings.TrimSpace(os.Getenv("PRODIGEN_CONFIG_FILE")); path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}
	envCfg, err := loadConfigEnv()
	if err != nil {
		return Config{}, err
	}
	cfg = cfg.Merge(envCfg)
	cfg.applyDefaults()
	return cfg, nil
}

// Validate checks the settings a process cannot run without.
func (c *Config) Validate() error {
	if c.LocalProvider {
		return nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return &ConfigurationError{Setting: "OPENAI_API_KEY", Reason: "not set"}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 2048
	}
	if c.HTTPTimeout <= 0 {
		if c.HTTPTimeoutString != "" {
			if parsed, err := time.ParseDuration(c.HTTPTimeoutString); err == nil {
				c.HTTPTimeout = parsed
			}
		}
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBackoff <= 0 {
		if c.RetryBackoffString != "" {
			if parsed, err := time.ParseDuration(c.RetryBackoffString); err == nil {
				c.RetryBackoff = parsed
			}
		}
		if c.RetryBackoff <= 0 {
			c.RetryBackoff = 2 * time.Second
		}
	}
	if c.RetryBackoffCap <= 0 {
		if c.RetryBackoffCapString != "" {
			if parsed, err := time.ParseDuration(c.RetryBackoffCapString); err == nil {
				c.RetryBackoffCap = parsed
			}
		}
		if c.RetryBackoffCap <= 0 {
			c.RetryBackoffCap = 10 * time.Second
		}
	}
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func loadConfigEnv() (Config, error) {
	cfg := Config{}
	cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.Model = strings.TrimSpace(os.Getenv("MODEL_NAME"))
	cfg.Endpoint = strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT"))
	if temp := strings.TrimSpace(os.Getenv("TEMPERATURE")); temp != "" {
		value, err := strconv.ParseFloat(temp, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse TEMPERATURE: %w", err)
		}
		cfg.Temperature = value
	}
	if tokens := strings.TrimSpace(os.Getenv("MAX_TOKENS")); tokens != "" {
		value, err := strconv.Atoi(tokens)
		if err != nil {
			return Config{}, fmt.Errorf("parse MAX_TOKENS: %w", err)
		}
		cfg.MaxTokens = value
	}
	if timeout := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeout != "" {
		cfg.HTTPTimeoutString = timeout
		if parsed, err := time.ParseDuration(timeout); err == nil {
			cfg.HTTPTimeout = parsed
		}
	}
	if attempts := strings.TrimSpace(os.Getenv("LLM_MAX_ATTEMPTS")); attempts != "" {
		value, err := strconv.Atoi(attempts)
		if err != nil {
			return Config{}, fmt.Errorf("parse LLM_MAX_ATTEMPTS: %w", err)
		}
		if value > 0 {
			cfg.MaxAttempts = value
		}
	}
	if backoff := strings.TrimSpace(os.Getenv("LLM_RETRY_BACKOFF")); backoff != "" {
		cfg.RetryBackoffString = backoff
		if parsed, err := time.ParseDuration(backoff); err == nil {
			cfg.RetryBackoff = parsed
		}
	}
	if cap := strings.TrimSpace(os.Getenv("LLM_RETRY_BACKOFF_CAP")); cap != "" {
		cfg.RetryBackoffCapString = cap
		if parsed, err := time.ParseDuration(cap); err == nil {
			cfg.RetryBackoffCap = parsed
		}
	}
	if local := strings.TrimSpace(os.Getenv("PRODIGEN_LOCAL_PROVIDER")); local != "" {
		parsed, err := strconv.ParseBool(local)
		if err != nil {
			return Config{}, fmt.Errorf("parse PRODIGEN_LOCAL_PROVIDER: %w", err)
		}
		cfg.LocalProvider = parsed
	}
	return cfg, nil
}
