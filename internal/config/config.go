// Package config manages application configuration from a YAML file, a .env
// file, environment variables and default values.
package config

import (
	"time"
)

// Config defines the application configuration. Values can be set through
// config.yaml or environment variables prefixed with BOT_ (e.g. BOT_AI_MODEL).
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	AI        AIConfig        `mapstructure:"ai"`
	History   HistoryConfig   `mapstructure:"history"`
	Reconnect ReconnectConfig `mapstructure:"reconnect"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log verbosity and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the chat platform settings. An empty token is not a
// validation error; the entrypoint treats it as the fatal missing credential.
type TelegramConfig struct {
	Token            string        `mapstructure:"token"`
	MaxMessageLength int           `mapstructure:"max_message_length" validate:"min=1,max=4096"`
	TypingInterval   time.Duration `mapstructure:"typing_interval"    validate:"min=1s"`
	SendTimeout      time.Duration `mapstructure:"send_timeout"       validate:"min=1s"`
}

// AIConfig configures the generation backend.
type AIConfig struct {
	Provider    string        `mapstructure:"provider"    validate:"oneof=gemini openai"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"    validate:"omitempty,url"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Instruction string        `mapstructure:"instruction" validate:"required,notblank"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelay  time.Duration `mapstructure:"retry_delay" validate:"min=0"`

	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the circuit breaker around generation calls.
type BreakerConfig struct {
	MaxFailures   int           `mapstructure:"max_failures"   validate:"min=1"`
	ResetInterval time.Duration `mapstructure:"reset_interval" validate:"min=1s"`
}

// HistoryConfig bounds the per-user conversation window.
type HistoryConfig struct {
	MaxLines int           `mapstructure:"max_lines" validate:"min=2,max=200,even"`
	IdleTTL  time.Duration `mapstructure:"idle_ttl"  validate:"min=0"`
}

// ReconnectConfig drives the chat session supervisor.
type ReconnectConfig struct {
	DisconnectDelay time.Duration `mapstructure:"disconnect_delay" validate:"min=0"`
	ErrorDelay      time.Duration `mapstructure:"error_delay"      validate:"min=0"`
	MaxDelay        time.Duration `mapstructure:"max_delay"        validate:"gtefield=ErrorDelay"`
	Multiplier      float64       `mapstructure:"multiplier"       validate:"min=1"`
	RandomFactor    float64       `mapstructure:"random_factor"    validate:"min=0,max=1"`
	MaxAttempts     int           `mapstructure:"max_attempts"     validate:"min=0"`
	StableAfter     time.Duration `mapstructure:"stable_after"     validate:"min=0"`
	MaxPollErrors   int           `mapstructure:"max_poll_errors"  validate:"min=1"`
}

// SchedulerConfig lists scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its cron schedule (with seconds field).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds every user-visible fixed string.
type MessagesConfig struct {
	Welcome          string `mapstructure:"welcome"           validate:"required"`
	Help             string `mapstructure:"help"              validate:"required"`
	Disclaimer       string `mapstructure:"disclaimer"`
	Apology          string `mapstructure:"apology"           validate:"required"`
	NotConfigured    string `mapstructure:"not_configured"    validate:"required"`
	ProvideMessage   string `mapstructure:"provide_message"   validate:"required"`
	DMGreeting       string `mapstructure:"dm_greeting"       validate:"required"`
	DMConfirm        string `mapstructure:"dm_confirm"        validate:"required"`
	DMForbidden      string `mapstructure:"dm_forbidden"      validate:"required"`
	ShortDescription string `mapstructure:"short_description"`
}
