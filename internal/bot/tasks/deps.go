// Package tasks implements the bot's scheduled maintenance tasks, their
// dependencies and registration.
package tasks

import (
	"log/slog"

	"github.com/edgard/coachbot/internal/config"
	"github.com/edgard/coachbot/internal/history"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	History *history.Store
	Config  *config.Config
}
