package bot

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

// ErrReconnectExhausted is returned by Supervisor.Run once the configured
// number of consecutive failed sessions is reached.
var ErrReconnectExhausted = errors.New("reconnect attempts exhausted")

// Session runs one connection to the chat platform. It blocks until ctx ends
// (returning nil) or the connection fails.
type Session func(ctx context.Context) error

// Supervisor keeps a Session running, restarting it with exponential backoff.
// Lost connections (ErrDisconnected) back off from the disconnect delay, any
// other failure from the error delay. A missing credential stops it for good.
type Supervisor struct {
	cfg     config.ReconnectConfig
	session Session
	log     *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewSupervisor creates a Supervisor for session.
func NewSupervisor(cfg config.ReconnectConfig, session Session, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		cfg:     cfg,
		session: session,
		log:     logger.With("component", "supervisor"),
		sleep:   resilience.Sleep,
		now:     time.Now,
	}
}

// Run blocks until ctx is cancelled (returning nil), the credential is
// missing, or reconnect attempts are exhausted.
func (s *Supervisor) Run(ctx context.Context) error {
	failures := 0
	for {
		started := s.now()
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			s.log.Info("Session stopped by shutdown")
			return nil
		}
		if errors.Is(err, apperrors.ErrMissingCredential) {
			s.log.Error("Chat credential missing, not reconnecting", "error", err)
			return err
		}
		if err == nil {
			err = apperrors.NewTransportError("session ended unexpectedly", apperrors.ErrDisconnected)
		}

		if s.cfg.StableAfter > 0 && s.now().Sub(started) >= s.cfg.StableAfter {
			failures = 0
		}
		failures++

		if s.cfg.MaxAttempts > 0 && failures > s.cfg.MaxAttempts {
			s.log.Error("Giving up on reconnecting", "attempts", failures-1, "error", err)
			return fmt.Errorf("%w after %d attempts: %w", ErrReconnectExhausted, failures-1, err)
		}

		delay := s.Delay(err, failures)
		switch {
		case errors.Is(err, apperrors.ErrDisconnected):
			s.log.Warn("Connection to chat platform lost, reconnecting", "error", err, "attempt", failures, "delay", delay)
		case apperrors.IsTransport(err):
			s.log.Warn("Chat platform transport failure, reconnecting", "error", err, "attempt", failures, "delay", delay)
		default:
			s.log.Error("Unexpected session error, restarting", "error", err, "code", apperrors.Code(err), "attempt", failures, "delay", delay)
		}

		if err := s.sleep(ctx, delay); err != nil {
			s.log.Info("Shutdown while waiting to reconnect")
			return nil
		}
	}
}

// Delay returns the wait before reconnect attempt number attempt (1-based)
// after err.
func (s *Supervisor) Delay(err error, attempt int) time.Duration {
	return s.backoff(err).Backoff(attempt)
}

func (s *Supervisor) backoff(err error) resilience.RetryConfig {
	base := s.cfg.ErrorDelay
	if errors.Is(err, apperrors.ErrDisconnected) {
		base = s.cfg.DisconnectDelay
	}
	return resilience.RetryConfig{
		InitialInterval: base,
		MaxInterval:     s.cfg.MaxDelay,
		Multiplier:      s.cfg.Multiplier,
		RandomFactor:    s.cfg.RandomFactor,
	}
}

// runOnce runs the session, converting a panic into an error.
func (s *Supervisor) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewTransportError("session panicked", fmt.Errorf("%v", r))
		}
	}()
	return s.session(ctx)
}
