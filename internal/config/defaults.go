package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultTelegramMaxMessageLength = 2000
	DefaultTelegramTypingInterval   = 4 * time.Second
	DefaultTelegramSendTimeout      = 10 * time.Second

	DefaultAIProvider    = "gemini"
	DefaultAIModel       = "gemini-1.5-flash"
	DefaultAITemperature = 0.7
	DefaultAITimeout     = 2 * time.Minute
	DefaultAIMaxRetries  = 2
	DefaultAIRetryDelay  = 2 * time.Second

	DefaultBreakerMaxFailures   = 5
	DefaultBreakerResetInterval = time.Minute

	DefaultHistoryMaxLines = 10
	DefaultHistoryIdleTTL  = 72 * time.Hour

	DefaultReconnectDisconnectDelay = 5 * time.Second
	DefaultReconnectErrorDelay      = 10 * time.Second
	DefaultReconnectMaxDelay        = 5 * time.Minute
	DefaultReconnectMultiplier      = 2.0
	DefaultReconnectRandomFactor    = 0.2
	DefaultReconnectMaxAttempts     = 0 // unlimited
	DefaultReconnectStableAfter     = time.Minute
	DefaultReconnectMaxPollErrors   = 5

	HistoryEvictionTask            = "history_eviction"
	DefaultHistoryEvictionSchedule = "0 */15 * * * *"
)

// DefaultInstruction is the persona preamble sent ahead of every conversation.
const DefaultInstruction = "You are a supportive reflective coach. Your goal is to help people explore their own " +
	"thoughts and feelings using Socratic questioning inspired by cognitive behavioral techniques. " +
	"Do not prescribe solutions or give direct advice. Instead, ask open-ended, guiding questions that help " +
	"the person examine their own thought patterns, such as 'What evidence supports that thought?', " +
	"'Is there another way to look at this situation?' or 'What would you tell a friend in your position?'. " +
	"Keep a compassionate, warm and non-judgmental tone. Use the earlier conversation for context. " +
	"Never give medical advice; you are a supportive tool, not a replacement for a therapist."

// DefaultMessages holds the built-in user-visible strings.
var DefaultMessages = MessagesConfig{
	Welcome: "Hello, I'm glad you're here. Send me a message in this private chat, " +
		"or use /talk followed by your message in a group, whenever you're ready.",
	Help: "/talk <message> - talk with me in any chat\n" +
		"/dmme - I'll open a private conversation with you\n" +
		"In a private chat you can simply write to me.",
	Disclaimer: "\n\n---\nPlease note: I am an AI assistant, not a licensed therapist. " +
		"If you are in crisis, please reach out to a mental health professional or a helpline immediately.",
	Apology:          "Sorry, I couldn't connect to the AI service at the moment.",
	NotConfigured:    "Sorry, the AI service is not configured correctly.",
	ProvideMessage:   "Please add a message after the command, for example: /talk I feel anxious today",
	DMGreeting:       "Hello, I'm glad you're here. This is a private space to talk. Feel free to begin whenever you're ready.",
	DMConfirm:        "I've started a private conversation with you.",
	DMForbidden:      "I couldn't send you a private message. Please open a chat with me and press Start, then try again.",
	ShortDescription: "Use /talk to begin a conversation",
}

var defaults = map[string]any{
	"logger.level": DefaultLogLevel,
	"logger.json":  DefaultLogJSON,

	"telegram.token":              "",
	"telegram.max_message_length": DefaultTelegramMaxMessageLength,
	"telegram.typing_interval":    DefaultTelegramTypingInterval,
	"telegram.send_timeout":       DefaultTelegramSendTimeout,

	"ai.provider":    DefaultAIProvider,
	"ai.api_key":     "",
	"ai.base_url":    "",
	"ai.model":       DefaultAIModel,
	"ai.temperature": DefaultAITemperature,
	"ai.instruction": DefaultInstruction,
	"ai.timeout":     DefaultAITimeout,
	"ai.max_retries": DefaultAIMaxRetries,
	"ai.retry_delay": DefaultAIRetryDelay,

	"ai.breaker.max_failures":   DefaultBreakerMaxFailures,
	"ai.breaker.reset_interval": DefaultBreakerResetInterval,

	"history.max_lines": DefaultHistoryMaxLines,
	"history.idle_ttl":  DefaultHistoryIdleTTL,

	"reconnect.disconnect_delay": DefaultReconnectDisconnectDelay,
	"reconnect.error_delay":      DefaultReconnectErrorDelay,
	"reconnect.max_delay":        DefaultReconnectMaxDelay,
	"reconnect.multiplier":       DefaultReconnectMultiplier,
	"reconnect.random_factor":    DefaultReconnectRandomFactor,
	"reconnect.max_attempts":     DefaultReconnectMaxAttempts,
	"reconnect.stable_after":     DefaultReconnectStableAfter,
	"reconnect.max_poll_errors":  DefaultReconnectMaxPollErrors,

	"scheduler.tasks": map[string]any{
		HistoryEvictionTask: map[string]any{
			"enabled":  true,
			"schedule": DefaultHistoryEvictionSchedule,
		},
	},

	"messages.welcome":           DefaultMessages.Welcome,
	"messages.help":              DefaultMessages.Help,
	"messages.disclaimer":        DefaultMessages.Disclaimer,
	"messages.apology":           DefaultMessages.Apology,
	"messages.not_configured":    DefaultMessages.NotConfigured,
	"messages.provide_message":   DefaultMessages.ProvideMessage,
	"messages.dm_greeting":       DefaultMessages.DMGreeting,
	"messages.dm_confirm":        DefaultMessages.DMConfirm,
	"messages.dm_forbidden":      DefaultMessages.DMForbidden,
	"messages.short_description": DefaultMessages.ShortDescription,
}

// envAliases lets credentials be supplied under their conventional names in
// addition to the BOT_ prefixed form.
var envAliases = map[string][]string{
	"telegram.token": {"BOT_TELEGRAM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"},
	"ai.api_key":     {"BOT_AI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"},
}
