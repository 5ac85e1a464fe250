package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/coachbot/internal/bot/handlers"
	"github.com/edgard/coachbot/internal/config"
	apperrors "github.com/edgard/coachbot/internal/errors"
	"github.com/edgard/coachbot/internal/logger"
	"github.com/edgard/coachbot/internal/telegram"
)

// pollTimeout is the long polling window; the HTTP client timeout matches it.
const pollTimeout = time.Minute

// TelegramSession builds a fresh Telegram client for every supervisor attempt
// and long polls until shutdown or until polling keeps failing.
type TelegramSession struct {
	cfg    *config.Config
	deps   handlers.HandlerDeps
	logger *slog.Logger

	serverURL string
	client    tgbot.HttpClient
}

// NewTelegramSession creates the session runner.
func NewTelegramSession(cfg *config.Config, deps handlers.HandlerDeps, logger *slog.Logger) *TelegramSession {
	return &TelegramSession{
		cfg:    cfg,
		deps:   deps,
		logger: logger.With("component", "telegram_session"),
		client: &http.Client{Timeout: pollTimeout},
	}
}

// Run implements Session. reconnect.max_poll_errors consecutive failed
// getUpdates calls end the session with ErrDisconnected; a successful poll
// resets the count. Conversation turns already in flight are not tied to the
// session: they keep running after a disconnect and stop only when ctx ends.
func (s *TelegramSession) Run(ctx context.Context) error {
	if !s.cfg.HasChatCredential() {
		return apperrors.NewConfigError("telegram token not set", apperrors.ErrMissingCredential)
	}

	sessionCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	monitor := &pollMonitor{
		client: s.client,
		limit:  int32(s.cfg.Reconnect.MaxPollErrors),
		onLimit: func(err error) {
			cancel(apperrors.NewTransportError("polling failed repeatedly", fmt.Errorf("%w: %w", apperrors.ErrDisconnected, err)))
		},
		log: s.logger,
	}

	opts := []tgbot.Option{
		tgbot.WithHTTPClient(pollTimeout, monitor),
		tgbot.WithMiddlewares(
			detachFromSession(ctx),
			logger.Recoverer(s.logger),
			logger.Middleware(s.logger),
		),
		tgbot.WithDefaultHandler(handlers.NewMessageHandler(s.deps)),
		tgbot.WithErrorsHandler(func(err error) {
			s.logger.Warn("Telegram client error", "error", err)
		}),
	}
	if s.serverURL != "" {
		opts = append(opts, tgbot.WithServerURL(s.serverURL))
	}

	tg, err := telegram.NewTelegramBot(s.cfg.Telegram.Token, s.logger, opts...)
	if err != nil {
		return apperrors.NewTransportError("failed to start session", err)
	}

	username := ""
	if me, err := tg.GetMe(sessionCtx); err != nil {
		s.logger.Warn("Failed to fetch bot identity, accepting commands addressed to any bot", "error", err)
	} else {
		username = me.Username
	}

	cmdHandlers := handlers.RegisterAllCommands(s.deps)
	if err := telegram.RegisterHandlers(tg, s.logger, username, cmdHandlers); err != nil {
		return apperrors.NewTransportError("failed to register handlers", err)
	}
	if err := telegram.PublishCommands(sessionCtx, tg, cmdHandlers, s.cfg.Messages.ShortDescription); err != nil {
		s.logger.Warn("Failed to publish bot commands", "error", err)
	}

	s.logger.Info("Starting Telegram long polling", "username", username)
	tg.Start(sessionCtx)

	if ctx.Err() != nil {
		return nil
	}
	if cause := context.Cause(sessionCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return apperrors.NewTransportError("polling stopped unexpectedly", apperrors.ErrDisconnected)
}

// detachFromSession hands handlers a context that survives the session
// ending and is cancelled only with root.
func detachFromSession(root context.Context) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			turnCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
			defer cancel()
			stop := context.AfterFunc(root, cancel)
			defer stop()

			next(turnCtx, b, update)
		}
	}
}

// pollMonitor wraps the HTTP client to watch getUpdates round trips.
// Consecutive failures reaching limit call onLimit once; a successful poll
// resets the count. Other API methods pass through untouched.
type pollMonitor struct {
	client  tgbot.HttpClient
	limit   int32
	onLimit func(error)
	log     *slog.Logger

	failures atomic.Int32
}

func (m *pollMonitor) Do(req *http.Request) (*http.Response, error) {
	resp, err := m.client.Do(req)
	if !strings.HasSuffix(req.URL.Path, "/getUpdates") || req.Context().Err() != nil {
		return resp, err
	}

	switch {
	case err != nil:
		m.failed(err)
	case resp.StatusCode != http.StatusOK:
		m.failed(fmt.Errorf("getUpdates returned status %d", resp.StatusCode))
	default:
		m.failures.Store(0)
	}
	return resp, err
}

func (m *pollMonitor) failed(err error) {
	n := m.failures.Add(1)
	m.log.Warn("Telegram polling failed", "error", err, "consecutive_errors", n)
	if m.limit > 0 && n == m.limit {
		m.onLimit(err)
	}
}
