// File path: internal/llm/llm.go
package llm

import (
	openai "github.com/openai/openai-go/v2"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
	"github.com/nicodishanthj/Prodigen_phase1/internal/config"
	"github.com/nicodishanthj/Prodigen_phase1/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

type ChatOptions = providers.ChatOptions

// NewProvider builds the provider from the loaded configuration. The local
// stub is selected only when the configuration asks for it; a missing
// credential is caught by config.Validate before this runs.
func NewProvider(cfg *config.Config) Provider {
	logger := common.Logger()
	if cfg.LocalProvider {
		logger.Warn("llm: local provider selected; responses are canned")
		return providers.NewLocalProvider()
	}
	opts := []openai.ClientOption{openai.WithAPIKey(cfg.APIKey)}
	if cfg.HTTPTimeout > 0 {
		logger.Info("llm: configuring OpenAI client with custom HTTP timeout", "timeout", cfg.HTTPTimeout)
		opts = append(opts, openai.WithHTTPTimeout(cfg.HTTPTimeout))
	}
	if cfg.Endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", cfg.Endpoint)
		opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
	} else {
		logger.Debug("llm: using default OpenAI endpoint")
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected", "model", cfg.Model)
	return providers.NewOpenAIProvider(client, cfg.Model, cfg.Temperature, cfg.MaxTokens)
}
