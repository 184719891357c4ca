package osci_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KyahWill/osci"
	"github.com/KyahWill/osci/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSession(t *testing.T) {
	t.Parallel()

	t.Run("existing session skips creation", func(t *testing.T) {
		t.Parallel()
		svc := &mock.SessionService{
			SessionExistsFn: func(_ context.Context, repository, userID string) bool {
				assert.Equal(t, "https://github.com/foo/bar", repository)
				assert.Equal(t, "alice", userID)
				return true
			},
			// CreateSessionFn left nil: calling it would panic.
		}
		s, err := osci.EnsureSession(context.Background(), svc, "https://github.com/foo/bar", "alice")
		require.NoError(t, err)
		assert.Equal(t, osci.Session{ID: "session_foo_bar", UserID: "alice", Repository: "foo/bar"}, s)
	})

	t.Run("missing session returns the creator's descriptor", func(t *testing.T) {
		t.Parallel()
		created := osci.Session{ID: "srv-42", UserID: "default_user", Repository: "foo/bar"}
		var createCalls int
		svc := &mock.SessionService{
			SessionExistsFn: func(context.Context, string, string) bool { return false },
			CreateSessionFn: func(_ context.Context, repository, userID string) (osci.Session, error) {
				createCalls++
				assert.Equal(t, osci.DefaultUserID, userID)
				return created, nil
			},
		}
		s, err := osci.EnsureSession(context.Background(), svc, "foo/bar", "")
		require.NoError(t, err)
		assert.Equal(t, created, s)
		assert.Equal(t, 1, createCalls)
	})

	t.Run("creation failure is reported as unavailable", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection refused")
		svc := &mock.SessionService{
			SessionExistsFn: func(context.Context, string, string) bool { return false },
			CreateSessionFn: func(context.Context, string, string) (osci.Session, error) {
				return osci.Session{}, cause
			},
		}
		var s osci.Session
		var err error
		assert.NotPanics(t, func() {
			s, err = osci.EnsureSession(context.Background(), svc, "foo/bar", "")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, osci.ErrSessionUnavailable)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, osci.Session{}, s)
	})
}
