package backend

import (
	"context"
	"fmt"

	"github.com/KyahWill/osci"
)

// SessionExists reports whether the backend already holds a session for
// repository. Any failure, including a transport error, reports false.
func (c *Client) SessionExists(ctx context.Context, repository, userID string) bool {
	local := osci.NewSession(repository, userID)
	req := checkSessionRequest{SessionID: local.ID, UserID: local.UserID}
	if err := c.post(ctx, c.timeout, "check-session", checkSessionPath, req, nil); err != nil {
		c.logger.Warn().
			Err(err).
			Str("session_id", local.ID).
			Str("repository", local.Repository).
			Msg("session check failed, treating as absent")
		return false
	}
	c.logger.Debug().Str("session_id", local.ID).Msg("session exists")
	return true
}

// CreateSession asks the backend to create a session for repository. Fields
// missing from the backend's answer are filled from the locally derived
// descriptor. Failures wrap osci.ErrSessionUnavailable.
func (c *Client) CreateSession(ctx context.Context, repository, userID string) (osci.Session, error) {
	local := osci.NewSession(repository, userID)
	req := createSessionRequest{
		Repository: local.Repository,
		UserID:     local.UserID,
		SessionID:  local.ID,
	}
	var resp sessionResponse
	if err := c.post(ctx, c.timeout, "create-session", createSessionPath, req, &resp); err != nil {
		c.logger.Error().
			Err(err).
			Str("session_id", local.ID).
			Str("repository", local.Repository).
			Msg("create session failed")
		return osci.Session{}, fmt.Errorf("%w: %w", osci.ErrSessionUnavailable, err)
	}
	remote := osci.Session{ID: resp.SessionID, UserID: resp.UserID, Repository: resp.Repository}
	s := osci.MergeSession(remote, local)
	c.logger.Info().Str("session_id", s.ID).Str("repository", s.Repository).Msg("session created")
	return s, nil
}
