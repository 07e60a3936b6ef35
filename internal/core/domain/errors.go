package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown number kind, format or provider.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Chat is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// External call failures.

	// ErrChatUnavailable indicates a chat completion call failed.
	// The cause is wrapped for logging; users only see the generic message.
	ErrChatUnavailable = errors.New("chat is unavailable right now, please try again later")

	// ErrEmailFailed indicates an outbound email could not be sent.
	ErrEmailFailed = errors.New("email could not be sent, please try again later")

	// ErrShareUnavailable indicates no object store is configured for uploads.
	ErrShareUnavailable = errors.New("share upload is not configured")

	// ErrRateLimited indicates an outbound call was refused by the local limiter.
	ErrRateLimited = errors.New("rate limited")
)

// FieldError is a validation failure on a single input field.
// It wraps ErrInvalidInput so callers can match with errors.Is.
type FieldError struct {
	// Field is the input field name, e.g. "name" or "birth_date".
	Field string

	// Message is a user-facing description of the problem.
	Message string
}

// Error implements error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns ErrInvalidInput.
func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// NewFieldError creates a FieldError.
func NewFieldError(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}
