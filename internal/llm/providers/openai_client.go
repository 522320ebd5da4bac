// File path: internal/llm/providers/openai_client.go
package providers

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
)

type OpenAIProvider struct {
	client             *openai.Client
	model              string
	defaultTemperature float64
	defaultMaxTokens   int
}

func NewOpenAIProvider(client *openai.Client, model string, temperature float64, maxTokens int) *OpenAIProvider {
	logger := common.Logger()
	logger.Info("llm: OpenAI provider configured", "model", model, "temperature", temperature, "max_tokens", maxTokens)
	return &OpenAIProvider{
		client:             client,
		model:              model,
		defaultTemperature: temperature,
		defaultMaxTokens:   maxTokens,
	}
}

func (o *OpenAIProvider) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	if o.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	logger := common.Logger()
	params := openai.ChatCompletionCreateParams{
		Model:       o.model,
		Temperature: o.defaultTemperature,
		MaxTokens:   o.defaultMaxTokens,
	}
	if opts.Temperature > 0 {
		params.Temperature = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = opts.MaxTokens
	}
	for _, msg := range messages {
		params.Messages = append(params.Messages, openai.ChatCompletionMessageParam{Role: msg.Role, Content: msg.Content})
	}
	logger.Debug("llm: sending chat completion request", "model", params.Model, "messages", len(params.Messages))
	resp, err := openai.Chat.Create(ctx, o.client, params)
	if err != nil {
		logger.Error("llm: chat completion failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	logger.Debug("llm: chat completion succeeded")
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
