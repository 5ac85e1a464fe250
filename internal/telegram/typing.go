package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// DefaultTypingInterval keeps the indicator visible; Telegram clears it after about five seconds.
const DefaultTypingInterval = 4 * time.Second

// StartTyping shows the typing indicator in chatID until the returned stop
// function is called or ctx ends. Failures are logged and otherwise ignored.
func StartTyping(ctx context.Context, api API, chatID int64, interval time.Duration, log *slog.Logger) (stop func()) {
	if interval <= 0 {
		interval = DefaultTypingInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := sendTypingAction(ctx, api, chatID); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.DebugContext(ctx, "Typing action failed", "error", err, "chat_id", chatID)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func sendTypingAction(ctx context.Context, api API, chatID int64) error {
	_, err := api.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	return err
}
