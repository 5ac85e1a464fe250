package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/coachbot/internal/config"
)

// Responder produces the reply text for a user's message. It never fails;
// errors are already turned into user-visible text.
type Responder interface {
	Respond(ctx context.Context, userID, message string) string
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Responder Responder
}
