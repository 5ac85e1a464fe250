package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/coachbot/internal/config"
)

func TestBotRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched, err := NewScheduler(log, &config.SchedulerConfig{}, nil)
	require.NoError(t, err)

	started := make(chan struct{})
	sup := NewSupervisor(testReconnectConfig(), func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewBot(log, sup, sched).Run(ctx) }()

	<-started
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bot did not stop")
	}
}

func TestBotRunReturnsSupervisorFailure(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched, err := NewScheduler(log, &config.SchedulerConfig{}, nil)
	require.NoError(t, err)

	cfg := testReconnectConfig()
	cfg.MaxAttempts = 1
	sup := NewSupervisor(cfg, func(context.Context) error { return errStartup }, log)
	sup.sleep = func(context.Context, time.Duration) error { return nil }

	err = NewBot(log, sup, sched).Run(context.Background())
	require.ErrorIs(t, err, ErrReconnectExhausted)
}
