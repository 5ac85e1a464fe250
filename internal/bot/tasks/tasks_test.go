package tasks

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/coachbot/internal/config"
	"github.com/edgard/coachbot/internal/history"
)

func TestHistoryEvictionTask(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := history.New(10, history.WithClock(func() time.Time { return now }))
	store.Append("old", "User: hi", "Bot: hello")
	now = now.Add(73 * time.Hour)
	store.Append("fresh", "User: hi", "Bot: hello")

	deps := TaskDeps{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		History: store,
		Config:  &config.Config{History: config.HistoryConfig{IdleTTL: 72 * time.Hour}},
	}

	tasks := RegisterAllTasks(deps)
	task, ok := tasks[config.HistoryEvictionTask]
	require.True(t, ok)

	require.NoError(t, task(context.Background()))
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, store.Get("old"))
	assert.Len(t, store.Get("fresh"), 2)
}

func TestHistoryEvictionTaskDisabled(t *testing.T) {
	t.Parallel()

	store := history.New(10, history.WithClock(func() time.Time { return time.Unix(0, 0) }))
	store.Append("u", "User: hi")

	task := newHistoryEvictionTask(TaskDeps{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		History: store,
		Config:  &config.Config{},
	})

	require.NoError(t, task(context.Background()))
	assert.Equal(t, 1, store.Len())
}

func TestHistoryEvictionTaskCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := newHistoryEvictionTask(TaskDeps{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		History: history.New(10),
		Config:  &config.Config{History: config.HistoryConfig{IdleTTL: time.Hour}},
	})

	require.ErrorIs(t, task(ctx), context.Canceled)
}
