// Package errors defines the application error taxonomy used across the relay:
// configuration, generation service, chat transport and permission failures.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown    = "UNKNOWN"
	CodeConfig     = "CONFIG"
	CodeService    = "SERVICE"
	CodeTransport  = "TRANSPORT"
	CodePermission = "PERMISSION"
)

var (
	// ErrMissingCredential is returned when the chat platform token is absent.
	// It is the only error that terminates the process.
	ErrMissingCredential = errors.New("chat platform credential is not configured")

	// ErrNotConfigured marks a generation backend that could not be set up.
	ErrNotConfigured = errors.New("generation service is not configured")

	// ErrDisconnected marks a chat session that lost its connection.
	ErrDisconnected = errors.New("chat platform connection lost")
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if it doesn't have one.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// ConfigError signals a missing or invalid setting. The process keeps running
// in a degraded mode.
type ConfigError struct {
	base Error
}

func (e *ConfigError) Error() string {
	return e.base.Error()
}

func (e *ConfigError) Code() string {
	return e.base.Code()
}

func (e *ConfigError) Unwrap() error {
	return e.base.Unwrap()
}

func NewConfigError(message string, cause error) error {
	return &ConfigError{
		base: Error{
			code:    CodeConfig,
			message: message,
			err:     cause,
		},
	}
}

// ServiceError wraps any failure of the external generation call.
type ServiceError struct {
	base Error
}

func (e *ServiceError) Error() string {
	return e.base.Error()
}

func (e *ServiceError) Code() string {
	return e.base.Code()
}

func (e *ServiceError) Unwrap() error {
	return e.base.Unwrap()
}

func NewServiceError(message string, cause error) error {
	return &ServiceError{
		base: Error{
			code:    CodeService,
			message: message,
			err:     cause,
		},
	}
}

// TransportError wraps a chat platform connection failure.
type TransportError struct {
	base Error
}

func (e *TransportError) Error() string {
	return e.base.Error()
}

func (e *TransportError) Code() string {
	return e.base.Code()
}

func (e *TransportError) Unwrap() error {
	return e.base.Unwrap()
}

func NewTransportError(message string, cause error) error {
	return &TransportError{
		base: Error{
			code:    CodeTransport,
			message: message,
			err:     cause,
		},
	}
}

// PermissionError is returned when a message cannot be delivered to a user,
// typically because they never opened a private chat with the bot.
type PermissionError struct {
	base Error
}

func (e *PermissionError) Error() string {
	return e.base.Error()
}

func (e *PermissionError) Code() string {
	return e.base.Code()
}

func (e *PermissionError) Unwrap() error {
	return e.base.Unwrap()
}

func NewPermissionError(message string, cause error) error {
	return &PermissionError{
		base: Error{
			code:    CodePermission,
			message: message,
			err:     cause,
		},
	}
}

// IsPermission reports whether err carries the PERMISSION code.
func IsPermission(err error) bool {
	return Code(err) == CodePermission
}

// IsTransport reports whether err carries the TRANSPORT code.
func IsTransport(err error) bool {
	return Code(err) == CodeTransport
}
