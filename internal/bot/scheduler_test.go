package bot

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/coachbot/internal/bot/tasks"
	"github.com/edgard/coachbot/internal/config"
)

func TestSchedulerRunsEnabledTasks(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"every_second": func(context.Context) error {
			runs.Add(1)
			return nil
		},
		"disabled": func(context.Context) error {
			t.Error("disabled task must not run")
			return nil
		},
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"every_second": {Enabled: true, Schedule: "* * * * * *"},
		"disabled":     {Enabled: false, Schedule: "* * * * * *"},
		"unregistered": {Enabled: true, Schedule: "* * * * * *"},
	}}

	s, err := NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, taskMap)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Error(t, s.Start(), "second start is rejected")
	assert.Equal(t, []string{"every_second"}, s.Jobs())

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "stopping twice is a no-op")
}

func TestSchedulerWithoutTasks(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler(nil, &config.SchedulerConfig{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Empty(t, s.Jobs())
	require.NoError(t, s.Stop())
}
