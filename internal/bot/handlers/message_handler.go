package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/coachbot/internal/telegram"
)

type messageHandler struct {
	deps HandlerDeps
}

// NewMessageHandler creates the default handler. It answers plain text sent
// in a private chat with the bot; everything else is ignored.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	h := messageHandler{deps}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.handle(ctx, b, update)
	}
}

func (h messageHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	if !fromHuman(update) {
		log.DebugContext(ctx, "Ignoring update without a human sender", "update_id", update.ID)
		return
	}
	msg := update.Message

	if msg.Chat.Type != models.ChatTypePrivate {
		log.DebugContext(ctx, "Ignoring non-private message", "chat_id", msg.Chat.ID, "chat_type", msg.Chat.Type)
		return
	}

	content := strings.TrimSpace(msg.Text)
	if content == "" {
		log.DebugContext(ctx, "Ignoring message without text", "chat_id", msg.Chat.ID)
		return
	}
	if strings.HasPrefix(content, "/") {
		log.DebugContext(ctx, "Ignoring unknown command", "chat_id", msg.Chat.ID, "command", strings.Fields(content)[0])
		return
	}

	log.InfoContext(ctx, "Handling private message", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)
	converse(ctx, h.deps, api, msg, content, 0, log)
}
