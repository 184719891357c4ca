package osci

import (
	"context"
	"errors"
	"fmt"
)

// SessionService talks to the backend about conversational sessions.
//
// SessionExists is fail-safe: any failure to get a positive answer, including
// transport errors, reports false so the caller falls through to creation.
// CreateSession returns an error wrapping ErrSessionUnavailable when the
// backend refuses or cannot be reached.
type SessionService interface {
	SessionExists(ctx context.Context, repository, userID string) bool
	CreateSession(ctx context.Context, repository, userID string) (Session, error)
}

// RepositoryService validates repository addresses and gathers their files.
type RepositoryService interface {
	ValidateRepository(ctx context.Context, url string) error
	GatherFiles(ctx context.Context, url string) (Repository, error)
}

// ChatRequest is a single user message bound to a session.
type ChatRequest struct {
	Message    string
	Repository string
	Files      []RepoFile
	SessionID  string
	UserID     string
}

// ChatService forwards a message to the backend agent and returns its reply.
type ChatService interface {
	SendMessage(ctx context.Context, req ChatRequest) (string, error)
}

// EnsureSession resolves a session for repository, checking first and creating
// only when the check is negative. A positive check yields the locally derived
// descriptor; a successful creation yields the creator's descriptor unchanged.
// Every failure is reported as an error wrapping ErrSessionUnavailable. No
// retries are attempted.
func EnsureSession(ctx context.Context, svc SessionService, repository, userID string) (Session, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	if svc.SessionExists(ctx, repository, userID) {
		return NewSession(repository, userID), nil
	}
	s, err := svc.CreateSession(ctx, repository, userID)
	if err != nil {
		if !errors.Is(err, ErrSessionUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSessionUnavailable, err)
		}
		return Session{}, fmt.Errorf("%s: %w", NormalizeRepository(repository), err)
	}
	return s, nil
}
