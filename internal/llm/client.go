// File path: internal/llm/client.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
	"github.com/nicodishanthj/Prodigen_phase1/internal/common/telemetry"
	"github.com/nicodishanthj/Prodigen_phase1/internal/config"
	"github.com/nicodishanthj/Prodigen_phase1/internal/product"
)

// Validator is implemented by structured outputs that check their own shape.
type Validator interface {
	Validate() error
}

// Client drives a Provider with retries and structured-output handling.
type Client struct {
	provider Provider
	cfg      *config.Config
}

func NewClient(provider Provider, cfg *config.Config) *Client {
	return &Client{provider: provider, cfg: cfg}
}

func (c *Client) ProviderName() string {
	if c == nil || c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// Generate sends a single-prompt chat request. Transport failures are retried
// with exponential backoff; the final failure is wrapped in *UpstreamError.
func (c *Client) Generate(ctx context.Context, operation, prompt string, opts ChatOptions) (string, error) {
	if c == nil || c.provider == nil {
		return "", fmt.Errorf("nil llm client")
	}
	logger := common.Logger()
	messages := []Message{{Role: "user", Content: prompt}}
	var response string
	err := Retry(ctx, operation, c.cfg.MaxAttempts, c.cfg.RetryBackoff, c.cfg.RetryBackoffCap, func(ctx context.Context) error {
		started := time.Now()
		out, chatErr := c.provider.Chat(ctx, messages, opts)
		telemetry.RecordLLMCall(operation, time.Since(started), chatErr)
		if chatErr != nil {
			return chatErr
		}
		response = out
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", &UpstreamError{
			Provider:  c.provider.Name(),
			Operation: operation,
			Attempts:  c.cfg.MaxAttempts,
			Err:       err,
		}
	}
	logger.Debug("llm: generation complete", "operation", operation, "chars", len(response))
	return response, nil
}

// GenerateStructured asks for JSON matching format and unmarshals the reply
// into out, running its validator when present. Shape failures come back as
// *product.ValidationError and are not retried; the call already succeeded at
// the transport level.
func (c *Client) GenerateStructured(ctx context.Context, operation, prompt, format string, opts ChatOptions, out interface{}) error {
	full := prompt + "\n\nRespond with JSON only. No markdown, no commentary.\nExpected format:\n" + format
	response, err := c.Generate(ctx, operation, full, opts)
	if err != nil {
		return err
	}
	cleaned := CleanJSON(response)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &product.ValidationError{
			Field:  operation,
			Reason: fmt.Sprintf("response is not valid JSON: %v", err),
		}
	}
	if validator, ok := out.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CleanJSON strips markdown code fences that models wrap around JSON replies.
func CleanJSON(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
