package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures an OpenAI-compatible backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient generates replies through the chat completions API.
type OpenAIClient struct {
	client chatCompleter
	model  string
	log    *slog.Logger
}

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient creates an OpenAI client. An empty API key is a configuration error.
func NewOpenAIClient(cfg OpenAIConfig, log *slog.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("OpenAI model name is required")
	}

	aiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		aiConfig.BaseURL = cfg.BaseURL
	}

	logger := log.With("component", "openai_client")
	logger.Info("OpenAI client initialized successfully", "model", cfg.Model, "base_url", aiConfig.BaseURL)
	return &OpenAIClient{
		client: openai.NewClientWithConfig(aiConfig),
		model:  cfg.Model,
		log:    logger,
	}, nil
}

// Generate sends the prompt as a single user message and returns the first choice.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	c.log.DebugContext(ctx, "Generating reply", "prompt_length", len(prompt), "temperature", temperature)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	c.log.DebugContext(ctx, "Received chat completion",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrEmptyResponse)
	}
	return cleanReply(resp.Choices[0].Message.Content)
}

func openAIRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	return false
}
