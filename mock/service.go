// Package mock provides test doubles for osci interfaces using function fields.
package mock

import (
	"context"

	"github.com/KyahWill/osci"
)

// Interface compliance checks.
var (
	_ osci.SessionService    = (*SessionService)(nil)
	_ osci.RepositoryService = (*RepositoryService)(nil)
	_ osci.ChatService       = (*ChatService)(nil)
)

// SessionService is a test double for osci.SessionService.
// Set the function fields for the methods you need.
type SessionService struct {
	SessionExistsFn func(ctx context.Context, repository, userID string) bool
	CreateSessionFn func(ctx context.Context, repository, userID string) (osci.Session, error)
}

// SessionExists delegates to SessionExistsFn.
func (s *SessionService) SessionExists(ctx context.Context, repository, userID string) bool {
	return s.SessionExistsFn(ctx, repository, userID)
}

// CreateSession delegates to CreateSessionFn.
func (s *SessionService) CreateSession(ctx context.Context, repository, userID string) (osci.Session, error) {
	return s.CreateSessionFn(ctx, repository, userID)
}

// RepositoryService is a test double for osci.RepositoryService.
type RepositoryService struct {
	ValidateRepositoryFn func(ctx context.Context, url string) error
	GatherFilesFn        func(ctx context.Context, url string) (osci.Repository, error)
}

// ValidateRepository delegates to ValidateRepositoryFn.
func (r *RepositoryService) ValidateRepository(ctx context.Context, url string) error {
	return r.ValidateRepositoryFn(ctx, url)
}

// GatherFiles delegates to GatherFilesFn.
func (r *RepositoryService) GatherFiles(ctx context.Context, url string) (osci.Repository, error) {
	return r.GatherFilesFn(ctx, url)
}

// ChatService is a test double for osci.ChatService.
// Set SendMessageFn before calling SendMessage.
type ChatService struct {
	SendMessageFn func(ctx context.Context, req osci.ChatRequest) (string, error)
}

// SendMessage delegates to SendMessageFn.
func (c *ChatService) SendMessage(ctx context.Context, req osci.ChatRequest) (string, error) {
	return c.SendMessageFn(ctx, req)
}
