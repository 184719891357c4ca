package osci_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KyahWill/osci"
	"github.com/stretchr/testify/assert"
)

func TestBackendError_Error(t *testing.T) {
	t.Parallel()

	withMsg := &osci.BackendError{Op: "gather-files", StatusCode: 404, Message: "Repository not found"}
	assert.Equal(t, "backend: gather-files: HTTP 404: Repository not found", withMsg.Error())

	bare := &osci.BackendError{Op: "check-session", StatusCode: 500}
	assert.Equal(t, "backend: check-session: HTTP 500", bare.Error())
}

func TestBackendMessage(t *testing.T) {
	t.Parallel()

	t.Run("wrapped backend error with message", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("validate: %w", &osci.BackendError{StatusCode: 400, Message: "Invalid GitHub URL format"})
		assert.Equal(t, "Invalid GitHub URL format", osci.BackendMessage(err, "fallback"))
	})

	t.Run("backend error without message", func(t *testing.T) {
		t.Parallel()
		err := &osci.BackendError{StatusCode: 502}
		assert.Equal(t, "fallback", osci.BackendMessage(err, "fallback"))
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "fallback", osci.BackendMessage(errors.New("connection refused"), "fallback"))
	})
}
