package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewJSONRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "warn", true)
	log.Info("hidden")
	log.Warn("shown", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestMiddlewareLogsAndCallsNext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "debug", false)

	called := false
	handler := Middleware(log)(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		called = true
	})

	handler(context.Background(), nil, &models.Update{
		ID: 7,
		Message: &models.Message{
			ID:   3,
			Chat: models.Chat{ID: 42, Type: models.ChatTypePrivate},
			From: &models.User{ID: 99},
			Text: "hello there",
		},
	})

	assert.True(t, called)
	out := buf.String()
	assert.Contains(t, out, "update_id=7")
	assert.Contains(t, out, "chat_id=42")
	assert.Contains(t, out, "user_id=99")
	assert.Contains(t, out, "Finished processing update")
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "...", truncateString("abcdef", 2))
	assert.Equal(t, "ééé...", truncateString("éééééééé", 6))
}

func TestRecovererSwallowsPanics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "info", false)

	h := Recoverer(log)(func(context.Context, *bot.Bot, *models.Update) {
		panic("handler exploded")
	})

	require.NotPanics(t, func() {
		h(context.Background(), nil, &models.Update{ID: 5})
	})
	assert.Contains(t, buf.String(), "Recovered from panic")
	assert.Contains(t, buf.String(), "handler exploded")
}

func TestGocronLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gl := NewGocronLogger(New(&buf, "info", true))

	gl.Debug("hidden")
	gl.Error("job failed", "name", "history_eviction")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"job failed"`)
	assert.Contains(t, out, `"component":"gocron"`)
	assert.Contains(t, out, `"name":"history_eviction"`)
}
