// Package main contains the entrypoint for the coaching bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgard/coachbot/internal/ai"
	"github.com/edgard/coachbot/internal/bot"
	"github.com/edgard/coachbot/internal/bot/handlers"
	"github.com/edgard/coachbot/internal/bot/tasks"
	"github.com/edgard/coachbot/internal/config"
	apperrors "github.com/edgard/coachbot/internal/errors"
	"github.com/edgard/coachbot/internal/history"
	"github.com/edgard/coachbot/internal/logger"
	"github.com/edgard/coachbot/internal/relay"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires config, logger, history, generator, chat session and scheduler,
// then blocks until shutdown. It returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	envPath := flag.String("env", "./.env", "Path to .env file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	if !cfg.HasChatCredential() {
		log.Error("Telegram token not found, exiting", "error", apperrors.ErrMissingCredential)
		return 1
	}

	store := history.New(cfg.History.MaxLines)
	log.Info("Conversation history initialized", "max_lines", store.MaxLines(), "idle_ttl", cfg.History.IdleTTL)

	if !cfg.HasAICredential() {
		log.Warn("No generation service key configured", "provider", cfg.AI.Provider)
	}

	generator, err := ai.NewGenerator(ctx, cfg.AI, log)
	if err != nil {
		// Degraded mode: every turn answers with messages.not_configured.
		log.Warn("Generation service unavailable, running without it", "error", err, "code", apperrors.Code(err))
	}

	pipeline := relay.New(store, generator, relay.Config{
		Persona:       cfg.AI.Instruction,
		Temperature:   cfg.AI.Temperature,
		Apology:       cfg.Messages.Apology,
		NotConfigured: cfg.Messages.NotConfigured,
	}, log)

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Responder: pipeline,
	}
	tDeps := tasks.TaskDeps{
		Logger:  log,
		History: store,
		Config:  cfg,
	}

	session := bot.NewTelegramSession(cfg, hDeps, log)
	supervisor := bot.NewSupervisor(cfg.Reconnect, session.Run, log)

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, supervisor, sched)

	log.Info("Starting bot...", "provider", cfg.AI.Provider, "model", cfg.AI.Model, "ai_configured", pipeline.Configured())
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
