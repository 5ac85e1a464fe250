package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-telegram/bot/models"

	apperrors "github.com/edgard/coachbot/internal/errors"
	"github.com/edgard/coachbot/internal/telegram"
	"github.com/edgard/coachbot/internal/text"
)

// converse runs one conversation turn for the sender of msg and delivers the
// reply, disclaimer included, to the chat msg came from. replyTo threads the
// first chunk under the triggering message when non-zero.
func converse(ctx context.Context, deps HandlerDeps, api telegram.API, msg *models.Message, message string, replyTo int, log *slog.Logger) {
	cfg := deps.Config
	chatID := msg.Chat.ID
	userID := strconv.FormatInt(msg.From.ID, 10)

	stopTyping := telegram.StartTyping(ctx, api, chatID, cfg.Telegram.TypingInterval, log)
	reply := deps.Responder.Respond(ctx, userID, message)
	stopTyping()

	out := text.FormatReply(reply, cfg.Messages.Disclaimer)
	sender := telegram.NewSender(api, cfg.Telegram.MaxMessageLength, cfg.Telegram.SendTimeout)
	if err := sender.Send(ctx, chatID, out, replyTo); err != nil {
		log.ErrorContext(ctx, "Failed to deliver reply", "error", err, "code", apperrors.Code(err), "chat_id", chatID, "user_id", msg.From.ID)
		return
	}

	log.DebugContext(ctx, "Delivered reply", "chat_id", chatID, "user_id", msg.From.ID, "length", len(out))
}

// commandArgument returns the text following the leading /command token
// (including any @botname suffix), trimmed. Text without a command is
// returned trimmed as is.
func commandArgument(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") {
		return s
	}
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(s[idx:])
}
