// Package ai provides the text generation backends used by the reply pipeline.
package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/edgard/coachbot/internal/text"
)

// Generator produces a reply for a fully built prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string, temperature float32) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	return f(ctx, prompt, temperature)
}

// ErrEmptyResponse is returned when the backend answers without any text.
var ErrEmptyResponse = errors.New("empty response from generation service")

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// cleanReply sanitizes backend output; nothing left means an empty response.
func cleanReply(s string) (string, error) {
	s = text.Sanitize(s)
	if s == "" {
		return "", ErrEmptyResponse
	}
	return s, nil
}
