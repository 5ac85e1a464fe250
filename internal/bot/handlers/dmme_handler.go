package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	apperrors "github.com/edgard/coachbot/internal/errors"
	"github.com/edgard/coachbot/internal/telegram"
)

// NewDMMeHandler returns a handler for the /dmme command: the bot opens a
// private conversation with the sender.
func NewDMMeHandler(deps HandlerDeps) bot.HandlerFunc {
	h := dmMeHandler{deps}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.handle(ctx, b, update)
	}
}

type dmMeHandler struct {
	deps HandlerDeps
}

func (h dmMeHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "dmme")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "DM handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	msg := update.Message
	userID := msg.From.ID
	messages := h.deps.Config.Messages
	sender := telegram.NewSender(api, h.deps.Config.Telegram.MaxMessageLength, h.deps.Config.Telegram.SendTimeout)

	log.InfoContext(ctx, "Handling /dmme command", "chat_id", msg.Chat.ID, "user_id", userID)

	err := sender.Send(ctx, userID, messages.DMGreeting, 0)
	switch {
	case err == nil:
		if msg.Chat.ID == userID {
			return
		}
		if err := sender.Send(ctx, msg.Chat.ID, messages.DMConfirm, msg.ID); err != nil {
			log.ErrorContext(ctx, "Failed to send DM confirmation", "error", err, "chat_id", msg.Chat.ID)
		}
	case apperrors.IsPermission(err):
		log.InfoContext(ctx, "User does not accept private messages", "user_id", userID, "error", err)
		if err := sender.Send(ctx, msg.Chat.ID, messages.DMForbidden, msg.ID); err != nil {
			log.ErrorContext(ctx, "Failed to send DM failure notice", "error", err, "chat_id", msg.Chat.ID)
		}
	default:
		log.ErrorContext(ctx, "Failed to send private greeting", "error", err, "code", apperrors.Code(err), "user_id", userID)
	}
}
