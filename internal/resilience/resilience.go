// Package resilience provides the failure-handling primitives used by the bot:
//   - a circuit breaker around generation calls, backed by gobreaker
//   - retries with exponential backoff and jitter
//   - backoff interval computation for the chat session supervisor
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrCircuitOpen indicates the circuit breaker is open
	ErrCircuitOpen = gobreaker.ErrOpenState
	// ErrTooManyRequests indicates the half-open probe budget is used up
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
	// ErrExhaustedRetries indicates retry attempts were exhausted
	ErrExhaustedRetries = errors.New("retry attempts exhausted")
)

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of CircuitState
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateHalfOpen:
		return "HALF-OPEN"
	case StateOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// mapState converts gobreaker state to our CircuitState
func mapState(state gobreaker.State) CircuitState {
	switch state {
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	case gobreaker.StateOpen:
		return StateOpen
	default:
		return StateClosed
	}
}

// CircuitBreakerConfig holds configuration for circuit breakers
type CircuitBreakerConfig struct {
	Name          string
	MaxFailures   int
	HalfOpenLimit int
	// ResetInterval is how long the breaker stays open before probing again.
	ResetInterval time.Duration
	// IsSuccessful classifies results; errors it accepts do not count as failures.
	IsSuccessful  func(err error) bool
	OnStateChange func(name string, from, to CircuitState)
}

// CircuitBreaker implements the circuit breaker pattern using gobreaker
type CircuitBreaker struct {
	name string
	cb   *gobreaker.CircuitBreaker
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}
	if cfg.ResetInterval <= 0 {
		cfg.ResetInterval = 60 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(cfg.HalfOpenLimit),
		Timeout:     cfg.ResetInterval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.MaxFailures)
		},
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromState, toState := mapState(from), mapState(to)
			slog.Info("Circuit breaker state changed", "name", name, "from", fromState, "to", toState)
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, fromState, toState)
			}
		},
	}

	return &CircuitBreaker{
		name: cfg.Name,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() CircuitState {
	return mapState(cb.cb.State())
}

// Execute runs an operation through the circuit breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, operation func(context.Context) error) error {
	_, err := cb.cb.Execute(func() (interface{}, error) {
		return nil, operation(ctx)
	})
	return err
}

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	RandomFactor    float64
	// Retryable decides whether a failed attempt is worth repeating.
	// Nil retries every error except an open circuit.
	Retryable func(err error) bool
}

var (
	rndMu sync.Mutex
	rnd   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randFloat() float64 {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Float64()
}

// Backoff returns the wait before retry number attempt (1-based):
// InitialInterval * Multiplier^(attempt-1), scaled by a random factor in
// [1-RandomFactor, 1+RandomFactor] and capped at MaxInterval.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	return c.backoff(attempt, randFloat())
}

func (c RetryConfig) backoff(attempt int, r float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	multiplier := c.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	interval := float64(c.InitialInterval) * math.Pow(multiplier, float64(attempt-1))
	if c.MaxInterval > 0 && interval > float64(c.MaxInterval) {
		interval = float64(c.MaxInterval)
	}

	jitter := 1.0 + c.RandomFactor*(2*r-1)
	interval *= jitter
	if c.MaxInterval > 0 && interval > float64(c.MaxInterval) {
		interval = float64(c.MaxInterval)
	}
	if interval < 0 {
		interval = 0
	}
	return time.Duration(interval)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithRetry executes an operation with exponential backoff retry
func WithRetry(ctx context.Context, operation func(context.Context) error, cfg RetryConfig) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return fmt.Errorf("retry abandoned: %w", ctx.Err())
		}
		if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyRequests) {
			return err
		}
		if cfg.Retryable != nil && !cfg.Retryable(err) {
			return err
		}

		if attempt < cfg.MaxAttempts {
			interval := cfg.Backoff(attempt)
			slog.Debug("Operation failed, retrying",
				"attempt", attempt,
				"max_attempts", cfg.MaxAttempts,
				"next_interval", interval,
				"error", err,
			)
			if err := Sleep(ctx, interval); err != nil {
				return fmt.Errorf("retry abandoned: %w", err)
			}
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhaustedRetries, cfg.MaxAttempts, lastErr)
}
