package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// GeminiClient generates replies with the Google Gemini Go SDK.
type GeminiClient struct {
	models    contentGenerator
	modelName string
	log       *slog.Logger
}

// contentGenerator is the subset of genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGeminiClient creates a Gemini client. An empty API key is a configuration error.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, log *slog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini model name is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	gi, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized successfully", "model", cfg.Model)
	return &GeminiClient{
		models:    gi.Models,
		modelName: cfg.Model,
		log:       logger,
	}, nil
}

// Generate sends the prompt as a single user turn and returns the reply text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	c.log.DebugContext(ctx, "Generating reply", "prompt_length", len(prompt), "temperature", temperature)

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}

	resp, err := c.models.GenerateContent(ctx, c.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	return c.extractText(ctx, resp)
}

func (c *GeminiClient) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.WarnContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", fmt.Errorf("gemini request blocked by safety filter: %s", reasonMsg)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, finishReason)
	}

	return cleanReply(resp.Text())
}

// geminiRetryable treats rate limiting and server-side failures as transient.
func geminiRetryable(err error) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch apiErr := any(e).(type) {
		case genai.APIError:
			return retryableStatus(apiErr.Code)
		case *genai.APIError:
			return retryableStatus(apiErr.Code)
		}
	}
	return false
}
