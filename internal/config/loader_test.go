package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/coachbot/internal/config"
)

// clearCredentialEnv hides credentials that may exist in the developer's shell.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"BOT_TELEGRAM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN",
		"BOT_AI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"BOT_AI_TEMPERATURE", "BOT_LOGGER_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearCredentialEnv(t)

	cfg, err := config.Load("", "")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLogLevel, cfg.Logger.Level)
	assert.Equal(t, config.DefaultAIProvider, cfg.AI.Provider)
	assert.Equal(t, config.DefaultAIModel, cfg.AI.Model)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 1e-6)
	assert.Equal(t, config.DefaultInstruction, cfg.AI.Instruction)
	assert.Equal(t, 10, cfg.History.MaxLines)
	assert.Equal(t, 2000, cfg.Telegram.MaxMessageLength)
	assert.Equal(t, 5*time.Second, cfg.Reconnect.DisconnectDelay)
	assert.Equal(t, 10*time.Second, cfg.Reconnect.ErrorDelay)
	assert.Equal(t, config.DefaultMessages, cfg.Messages)

	task, ok := cfg.Scheduler.Tasks[config.HistoryEvictionTask]
	require.True(t, ok)
	assert.True(t, task.Enabled)
	assert.Equal(t, config.DefaultHistoryEvictionSchedule, task.Schedule)

	assert.False(t, cfg.HasChatCredential())
	assert.False(t, cfg.HasAICredential())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearCredentialEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultHistoryMaxLines, cfg.History.MaxLines)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	clearCredentialEnv(t)

	path := writeFile(t, "config.yaml", `
logger:
  level: debug
  json: true
ai:
  provider: openai
  model: gpt-4o-mini
  instruction: "Be kind."
history:
  max_lines: 20
  idle_ttl: 1h
scheduler:
  tasks:
    history_eviction:
      enabled: false
messages:
  apology: "Try again later."
`)
	t.Setenv("BOT_AI_TEMPERATURE", "1.1")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := config.Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.JSON)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "Be kind.", cfg.AI.Instruction)
	assert.InDelta(t, 1.1, cfg.AI.Temperature, 1e-6)
	assert.Equal(t, 20, cfg.History.MaxLines)
	assert.Equal(t, time.Hour, cfg.History.IdleTTL)
	assert.False(t, cfg.Scheduler.Tasks[config.HistoryEvictionTask].Enabled)
	assert.Equal(t, "Try again later.", cfg.Messages.Apology)
	assert.Equal(t, config.DefaultMessages.Welcome, cfg.Messages.Welcome)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearCredentialEnv(t)
	// godotenv never overrides variables that exist, even empty ones.
	require.NoError(t, os.Unsetenv("TELEGRAM_BOT_TOKEN"))
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	envPath := writeFile(t, ".env", "TELEGRAM_BOT_TOKEN=from-dotenv\nGEMINI_API_KEY=gemini-key\n")

	cfg, err := config.Load("", envPath)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Telegram.Token)
	assert.Equal(t, "gemini-key", cfg.AI.APIKey)
	assert.True(t, cfg.HasChatCredential())
	assert.True(t, cfg.HasAICredential())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"temperature out of range", "ai:\n  temperature: 5\n"},
		{"blank persona", "ai:\n  instruction: \"   \"\n"},
		{"unknown provider", "ai:\n  provider: llama\n"},
		{"bad log level", "logger:\n  level: verbose\n"},
		{"history too short", "history:\n  max_lines: 1\n"},
		{"history splits an exchange", "history:\n  max_lines: 9\n"},
		{"chunk size above platform limit", "telegram:\n  max_message_length: 5000\n"},
		{"enabled task without schedule", "scheduler:\n  tasks:\n    history_eviction:\n      enabled: true\n      schedule: \"\"\n"},
		{"max delay below error delay", "reconnect:\n  max_delay: 1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCredentialEnv(t)

			path := writeFile(t, "config.yaml", tt.yaml)
			_, err := config.Load(path, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrConfiguration)
		})
	}
}
