package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/coachbot/internal/config"
	apperrors "github.com/edgard/coachbot/internal/errors"
	"github.com/edgard/coachbot/internal/resilience"
)

// NewGenerator builds the configured backend and wraps it with retries, a
// circuit breaker and the request timeout. A missing or unusable key yields a
// ConfigError wrapping ErrNotConfigured; callers run in degraded mode.
func NewGenerator(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Generator, error) {
	log.Info("Initializing AI client", "provider", cfg.Provider, "model", cfg.Model)

	if cfg.APIKey == "" {
		return nil, apperrors.NewConfigError("no API key for "+cfg.Provider, apperrors.ErrNotConfigured)
	}

	var (
		backend   Generator
		retryable func(error) bool
		err       error
	)
	switch cfg.Provider {
	case "gemini":
		backend, err = NewGeminiClient(ctx, GeminiConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model}, log)
		retryable = geminiRetryable
	case "openai":
		backend, err = NewOpenAIClient(OpenAIConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model}, log)
		retryable = openAIRetryable
	default:
		err = fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, apperrors.NewConfigError("failed to create "+cfg.Provider+" client", fmt.Errorf("%w: %w", apperrors.ErrNotConfigured, err))
	}

	return NewGuarded(backend, GuardOptions{
		Name:          cfg.Provider,
		Timeout:       cfg.Timeout,
		MaxRetries:    cfg.MaxRetries,
		RetryDelay:    cfg.RetryDelay,
		Retryable:     retryable,
		MaxFailures:   cfg.Breaker.MaxFailures,
		ResetInterval: cfg.Breaker.ResetInterval,
	}, log), nil
}

// GuardOptions configures a Guarded generator.
type GuardOptions struct {
	Name          string
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	Retryable     func(error) bool
	MaxFailures   int
	ResetInterval time.Duration
}

// Guarded decorates a Generator with a timeout, retries on transient
// failures and a circuit breaker. Every failure it returns is a ServiceError.
type Guarded struct {
	next    Generator
	timeout time.Duration
	retry   resilience.RetryConfig
	breaker *resilience.CircuitBreaker
	log     *slog.Logger
}

// NewGuarded wraps next.
func NewGuarded(next Generator, opts GuardOptions, log *slog.Logger) *Guarded {
	retryable := opts.Retryable
	if retryable == nil {
		retryable = func(error) bool { return false }
	}

	return &Guarded{
		next:    next,
		timeout: opts.Timeout,
		retry: resilience.RetryConfig{
			MaxAttempts:     opts.MaxRetries + 1,
			InitialInterval: opts.RetryDelay,
			MaxInterval:     30 * time.Second,
			Multiplier:      2,
			RandomFactor:    0.1,
			Retryable:       retryable,
		},
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:          opts.Name,
			MaxFailures:   opts.MaxFailures,
			ResetInterval: opts.ResetInterval,
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		}),
		log: log.With("component", "ai_guard", "provider", opts.Name),
	}
}

// Generate implements Generator.
func (g *Guarded) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	var reply string
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		return resilience.WithRetry(ctx, func(ctx context.Context) error {
			var genErr error
			reply, genErr = g.next.Generate(ctx, prompt, temperature)
			return genErr
		}, g.retry)
	})
	if err != nil {
		g.log.WarnContext(ctx, "Generation failed", "error", err, "breaker_state", g.breaker.State(), "duration", time.Since(start))
		return "", apperrors.NewServiceError("generation failed", err)
	}

	g.log.DebugContext(ctx, "Generation succeeded", "reply_length", len(reply), "duration", time.Since(start))
	return reply, nil
}
