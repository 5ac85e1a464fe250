package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	apperrors "github.com/edgard/coachbot/internal/errors"
	"github.com/edgard/coachbot/internal/text"
)

// Sender delivers text to chats, splitting it to the platform size limit.
type Sender struct {
	api         API
	limit       int
	sendTimeout time.Duration
}

// NewSender creates a Sender. A non-positive limit falls back to
// text.DefaultChunkSize.
func NewSender(api API, limit int, sendTimeout time.Duration) *Sender {
	if limit <= 0 {
		limit = text.DefaultChunkSize
	}
	return &Sender{api: api, limit: limit, sendTimeout: sendTimeout}
}

// Send delivers msg to chatID as consecutive messages of at most the
// configured length. The first chunk replies to replyTo when it is non-zero.
// Delivery stops at the first failed chunk.
func (s *Sender) Send(ctx context.Context, chatID int64, msg string, replyTo int) error {
	chunks := text.Chunk(msg, s.limit)
	for i, chunk := range chunks {
		params := &bot.SendMessageParams{ChatID: chatID, Text: chunk}
		if i == 0 && replyTo != 0 {
			params.ReplyParameters = &models.ReplyParameters{MessageID: replyTo, AllowSendingWithoutReply: true}
		}
		if err := s.sendOne(ctx, params); err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

func (s *Sender) sendOne(ctx context.Context, params *bot.SendMessageParams) error {
	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}
	_, err := s.api.SendMessage(ctx, params)
	return classify(err)
}

// classify maps client errors onto the application error kinds. A refused
// delivery (blocked bot, private chat never opened) is a PermissionError;
// anything else is a TransportError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bot.ErrorForbidden) {
		return apperrors.NewPermissionError("delivery refused by recipient", err)
	}
	return apperrors.NewTransportError("failed to send message", err)
}
