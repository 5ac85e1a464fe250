package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/coachbot/internal/telegram"
)

// RegisterAllCommands initializes and returns a map of all available bot commands.
// It configures each command with appropriate handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]telegram.RegisteredHandler {
	handlers := make(map[string]telegram.RegisteredHandler)

	humanOnly := []tgbot.Middleware{HumanSenderOnly(deps)}

	handlers["/start"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  humanOnly,
	}
	handlers["/help"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		Description: "How to talk with me",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  humanOnly,
	}
	handlers["/talk"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "talk",
		Description: "Get a supportive, coach-style reply",
		Handler:     NewTalkHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  humanOnly,
	}
	handlers["/dmme"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "dmme",
		Description: "Start a private chat with me",
		Handler:     NewDMMeHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  humanOnly,
	}

	return handlers
}
