package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
// bot.New calls getMe, so a failure here usually means the token is wrong or the
// API is unreachable.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is the outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// RegisterHandlers registers command handlers with the Telegram bot instance,
// wrapping each with its own middleware. Command handlers match both
// "/cmd" and "/cmd@username"; an empty username accepts any addressee.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, username string, registeredHandlers map[string]RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registeredHandlers) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	log.Info("Registering Telegram handlers...", "count", len(registeredHandlers))

	for _, regHandler := range registeredHandlers {
		if regHandler.Handler == nil {
			log.Warn("Skipping registration for nil handler", "pattern", regHandler.Pattern)
			continue
		}

		finalHandler := applyMiddleware(regHandler.Handler, regHandler.Middleware)
		if regHandler.HandlerType == bot.HandlerTypeMessageText && regHandler.MatchType == bot.MatchTypeCommandStartOnly {
			b.RegisterHandlerMatchFunc(CommandMatcher(regHandler.Pattern, username), finalHandler)
		} else {
			b.RegisterHandler(regHandler.HandlerType, regHandler.Pattern, regHandler.MatchType, finalHandler)
		}
		log.Debug("Registered handler", "pattern", regHandler.Pattern, "match_type", regHandler.MatchType, "middleware_count", len(regHandler.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", len(registeredHandlers))
	return nil
}

// CommandMatcher matches messages whose text starts with /command, optionally
// addressed as /command@username. Commands addressed to another bot do not
// match. Comparison is case-insensitive, as Telegram clients treat it.
func CommandMatcher(command, username string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		fields := strings.Fields(update.Message.Text)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
			return false
		}

		name, addressee, addressed := strings.Cut(fields[0][1:], "@")
		if !strings.EqualFold(name, command) {
			return false
		}
		return !addressed || username == "" || strings.EqualFold(addressee, username)
	}
}

// BotCommands lists the documented commands in a stable order for the
// platform's command menu.
func BotCommands(registeredHandlers map[string]RegisteredHandler) []models.BotCommand {
	cmds := make([]models.BotCommand, 0, len(registeredHandlers))
	for _, h := range registeredHandlers {
		if h.Description == "" || h.Pattern == "" {
			continue
		}
		cmds = append(cmds, models.BotCommand{Command: h.Pattern, Description: h.Description})
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Command < cmds[j].Command })
	return cmds
}

// PublishCommands publishes the command menu and the short profile
// description. Failures are returned but are not fatal to the session.
func PublishCommands(ctx context.Context, b *bot.Bot, registeredHandlers map[string]RegisteredHandler, shortDescription string) error {
	cmds := BotCommands(registeredHandlers)
	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: cmds}); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	if shortDescription != "" {
		if _, err := b.SetMyShortDescription(ctx, &bot.SetMyShortDescriptionParams{ShortDescription: shortDescription}); err != nil {
			return fmt.Errorf("failed to set short description: %w", err)
		}
	}
	return nil
}
