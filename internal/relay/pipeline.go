// Package relay turns an incoming user message into a model reply, keeping
// the per-user conversation window up to date.
package relay

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/coachbot/internal/ai"
	"github.com/edgard/coachbot/internal/history"
)

// Config holds the fixed inputs of every turn.
type Config struct {
	Persona       string
	Temperature   float32
	Apology       string
	NotConfigured string
}

// Pipeline answers user messages. A nil generator means the generation
// service is not configured and every turn gets the NotConfigured text.
type Pipeline struct {
	store     *history.Store
	generator ai.Generator
	cfg       Config
	log       *slog.Logger
}

// New creates a Pipeline.
func New(store *history.Store, generator ai.Generator, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:     store,
		generator: generator,
		cfg:       cfg,
		log:       logger.With("component", "reply_pipeline"),
	}
}

// Configured reports whether a generation backend is available.
func (p *Pipeline) Configured() bool {
	return p.generator != nil
}

// Respond produces the reply text for message. It never fails: service
// errors turn into the apology text and leave the user's history untouched.
// Turns of the same user are serialized.
func (p *Pipeline) Respond(ctx context.Context, userID, message string) string {
	log := p.log.With("user_id", userID)

	if p.generator == nil {
		log.WarnContext(ctx, "Generation service not configured, sending fixed reply")
		return p.cfg.NotConfigured
	}

	unlock, err := p.store.Lock(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "Gave up waiting for previous turn", "error", err)
		return p.cfg.Apology
	}
	defer unlock()

	lines := p.store.Get(userID)
	prompt := BuildPrompt(p.cfg.Persona, lines, message)

	start := time.Now()
	reply, err := p.generator.Generate(ctx, prompt, p.cfg.Temperature)
	if err != nil {
		log.ErrorContext(ctx, "Failed to generate reply", "error", err, "history_lines", len(lines), "duration", time.Since(start))
		return p.cfg.Apology
	}

	p.store.Append(userID, history.UserPrefix+message, history.BotPrefix+reply)
	log.DebugContext(ctx, "Generated reply",
		"history_lines", len(lines),
		"prompt_length", len(prompt),
		"reply_length", len(reply),
		"duration", time.Since(start))

	return reply
}

// BuildPrompt lays out the persona, a blank line, the prior conversation
// lines and finally the new user line, one per line.
func BuildPrompt(persona string, lines []string, message string) string {
	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(history.UserPrefix)
	sb.WriteString(message)
	return sb.String()
}
