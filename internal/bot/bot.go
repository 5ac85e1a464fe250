// Package bot implements the bot lifecycle: the reconnecting chat session,
// the task scheduler and their orchestration.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger     *slog.Logger
	supervisor *Supervisor
	scheduler  *Scheduler
}

// NewBot creates a new instance of the bot from its supervised chat session
// and scheduler.
func NewBot(logger *slog.Logger, supervisor *Supervisor, scheduler *Scheduler) *Bot {
	return &Bot{
		logger:     logger.With("component", "bot_orchestrator"),
		supervisor: supervisor,
		scheduler:  scheduler,
	}
}

// Run starts the bot and all its components, handling graceful shutdown on context cancellation.
// It returns an error if the chat session gives up or the scheduler fails to start.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting chat session supervisor...")
		if err := b.supervisor.Run(gCtx); err != nil {
			return fmt.Errorf("chat session supervisor stopped: %w", err)
		}
		b.logger.Info("Chat session supervisor stopped.")
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
