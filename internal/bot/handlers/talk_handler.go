package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/coachbot/internal/telegram"
)

// NewTalkHandler returns a handler for the /talk command, usable in any chat.
func NewTalkHandler(deps HandlerDeps) bot.HandlerFunc {
	h := talkHandler{deps}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.handle(ctx, b, update)
	}
}

type talkHandler struct {
	deps HandlerDeps
}

func (h talkHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "talk")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Talk handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	msg := update.Message

	message := commandArgument(msg.Text)
	if message == "" {
		log.InfoContext(ctx, "Talk command without a message", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)
		if _, err := api.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          msg.Chat.ID,
			Text:            h.deps.Config.Messages.ProvideMessage,
			ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
		}); err != nil {
			log.ErrorContext(ctx, "Failed to send usage hint", "error", err, "chat_id", msg.Chat.ID)
		}
		return
	}

	log.InfoContext(ctx, "Handling /talk command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	replyTo := 0
	if msg.Chat.Type != models.ChatTypePrivate {
		replyTo = msg.ID
	}
	converse(ctx, h.deps, api, msg, message, replyTo, log)
}
