package osci

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates user input failed validation before any
	// network call was made.
	ErrValidation = errors.New("validation error")

	// ErrEmptyRepositoryURL indicates the repository address was blank.
	ErrEmptyRepositoryURL = fmt.Errorf("please enter a GitHub URL: %w", ErrValidation)

	// ErrInvalidRepositoryURL indicates the repository address is not a
	// https://github.com/owner/name address.
	ErrInvalidRepositoryURL = fmt.Errorf("invalid GitHub URL format, expected https://github.com/username/repository: %w", ErrValidation)

	// ErrSessionUnavailable indicates no session could be resolved with the
	// backend, whether it refused or could not be reached.
	ErrSessionUnavailable = errors.New("session unavailable")
)

// BackendError is returned when the backend answers with a non-success
// status. Message carries the backend's own error text when it sent one.
type BackendError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: %s: HTTP %d", e.Op, e.StatusCode)
}

// BackendMessage returns the backend-supplied message carried by err, or
// fallback when err is not a *BackendError or carries no message.
func BackendMessage(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
