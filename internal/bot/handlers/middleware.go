// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HumanSenderOnly drops updates that carry no message, no sender, or were
// sent by a bot (including this one), so the bot never answers itself.
func HumanSenderOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if !fromHuman(update) {
				deps.Logger.DebugContext(ctx, "Ignoring update without a human sender", "update_id", update.ID)
				return
			}
			next(ctx, bot, update)
		}
	}
}

func fromHuman(update *models.Update) bool {
	return update != nil && update.Message != nil && update.Message.From != nil && !update.Message.From.IsBot
}
