package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/edgard/coachbot/internal/errors"
)

func TestCode(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", apperrors.NewConfigError("bad key", cause), apperrors.CodeConfig},
		{"service", apperrors.NewServiceError("generate", cause), apperrors.CodeService},
		{"transport", apperrors.NewTransportError("poll", cause), apperrors.CodeTransport},
		{"permission", apperrors.NewPermissionError("dm", cause), apperrors.CodePermission},
		{"wrapped", fmt.Errorf("outer: %w", apperrors.NewServiceError("generate", cause)), apperrors.CodeService},
		{"plain", cause, apperrors.CodeUnknown},
		{"nil", nil, apperrors.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, apperrors.Code(tt.err))
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	err := apperrors.NewTransportError("session failed", apperrors.ErrDisconnected)

	assert.Equal(t, "session failed: chat platform connection lost", err.Error())
	assert.ErrorIs(t, err, apperrors.ErrDisconnected)
	assert.True(t, apperrors.IsTransport(err))
	assert.False(t, apperrors.IsPermission(err))

	var transportErr *apperrors.TransportError
	assert.ErrorAs(t, err, &transportErr)

	bare := apperrors.NewPermissionError("cannot message user", nil)
	assert.Equal(t, "cannot message user", bare.Error())
	assert.True(t, apperrors.IsPermission(bare))
}
