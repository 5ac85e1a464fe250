package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edgard/coachbot/internal/errors"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []*bot.SendMessageParams
	actions int
	sendErr func(n int) error
}

func (f *fakeAPI) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	if f.sendErr != nil {
		if err := f.sendErr(len(f.sent)); err != nil {
			return nil, err
		}
	}
	return &models.Message{ID: len(f.sent)}, nil
}

func (f *fakeAPI) SendChatAction(context.Context, *bot.SendChatActionParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions++
	return true, nil
}

func (f *fakeAPI) actionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actions
}

func TestSenderSplitsLongReplies(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	s := NewSender(api, 2000, time.Second)
	msg := strings.Repeat("a", 2000) + strings.Repeat("b", 450)

	require.NoError(t, s.Send(context.Background(), 42, msg, 7))

	require.Len(t, api.sent, 2)
	assert.Len(t, api.sent[0].Text, 2000)
	assert.Len(t, api.sent[1].Text, 450)
	assert.Equal(t, msg, api.sent[0].Text+api.sent[1].Text)
	assert.EqualValues(t, 42, api.sent[0].ChatID)
	require.NotNil(t, api.sent[0].ReplyParameters)
	assert.Equal(t, 7, api.sent[0].ReplyParameters.MessageID)
	assert.Nil(t, api.sent[1].ReplyParameters)
}

func TestSenderClassifiesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"forbidden", fmt.Errorf("%w, bot was blocked by the user", bot.ErrorForbidden), apperrors.CodePermission},
		{"other", errors.New("connection reset"), apperrors.CodeTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := &fakeAPI{sendErr: func(int) error { return tt.err }}
			err := NewSender(api, 10, 0).Send(context.Background(), 1, strings.Repeat("x", 25), 0)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.Code(err))
			assert.Len(t, api.sent, 1, "delivery stops at the first failed chunk")
		})
	}
}

func TestSenderEmptyMessageSendsNothing(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	require.NoError(t, NewSender(api, 0, 0).Send(context.Background(), 1, "", 0))
	assert.Empty(t, api.sent)
}

func TestStartTyping(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	stop := StartTyping(context.Background(), api, 1, 5*time.Millisecond, log)
	assert.Eventually(t, func() bool { return api.actionCount() >= 2 }, time.Second, time.Millisecond)
	stop()

	after := api.actionCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, api.actionCount())
}

func TestBotCommands(t *testing.T) {
	t.Parallel()

	cmds := BotCommands(map[string]RegisteredHandler{
		"/talk":   {Pattern: "talk", Description: "Talk"},
		"/dmme":   {Pattern: "dmme", Description: "DM me"},
		"/hidden": {Pattern: "hidden"},
	})

	assert.Equal(t, []models.BotCommand{
		{Command: "dmme", Description: "DM me"},
		{Command: "talk", Description: "Talk"},
	}, cmds)
}

func TestApplyMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) bot.Middleware {
		return func(next bot.HandlerFunc) bot.HandlerFunc {
			return func(ctx context.Context, b *bot.Bot, u *models.Update) {
				order = append(order, name)
				next(ctx, b, u)
			}
		}
	}
	h := applyMiddleware(func(context.Context, *bot.Bot, *models.Update) {
		order = append(order, "handler")
	}, []bot.Middleware{mw("outer"), mw("inner")})

	h(context.Background(), nil, &models.Update{})
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestCommandMatcher(t *testing.T) {
	t.Parallel()

	match := CommandMatcher("talk", "CoachBot")
	tests := []struct {
		text string
		want bool
	}{
		{"/talk hi", true},
		{"/talk", true},
		{"/talk@CoachBot hi", true},
		{"/talk@coachbot", true},
		{"/TALK hi", true},
		{"/talk@OtherBot hi", false},
		{"/talker hi", false},
		{"talk hi", false},
		{"hi /talk", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, match(&models.Update{Message: &models.Message{Text: tt.text}}))
		})
	}

	assert.False(t, match(&models.Update{}))
	assert.True(t, CommandMatcher("talk", "")(&models.Update{Message: &models.Message{Text: "/talk@AnyBot hi"}}))
}

func TestRegisterHandlersRoutesAddressedCommands(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var routed []string
	record := func(name string) bot.HandlerFunc {
		return func(context.Context, *bot.Bot, *models.Update) {
			mu.Lock()
			defer mu.Unlock()
			routed = append(routed, name)
		}
	}

	b, err := bot.New("123:test-token",
		bot.WithSkipGetMe(),
		bot.WithNotAsyncHandlers(),
		bot.WithDefaultHandler(record("default")),
	)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = RegisterHandlers(b, log, "CoachBot", map[string]RegisteredHandler{
		"/talk": {
			HandlerType: bot.HandlerTypeMessageText,
			Pattern:     "talk",
			MatchType:   bot.MatchTypeCommandStartOnly,
			Handler:     record("talk"),
		},
	})
	require.NoError(t, err)

	for _, text := range []string{"/talk hi", "/talk@CoachBot hi", "/talk@OtherBot hi", "hello"} {
		command := strings.Fields(text)[0]
		msg := &models.Message{
			ID:   1,
			Text: text,
			Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup},
			From: &models.User{ID: 7},
		}
		if strings.HasPrefix(command, "/") {
			msg.Entities = []models.MessageEntity{{Type: models.MessageEntityTypeBotCommand, Offset: 0, Length: len(command)}}
		}
		b.ProcessUpdate(context.Background(), &models.Update{ID: 1, Message: msg})
	}

	assert.Equal(t, []string{"talk", "talk", "default", "default"}, routed)
}
