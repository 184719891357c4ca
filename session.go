package osci

import (
	"regexp"
	"strings"
)

// DefaultUserID is the user identifier used when none is configured.
const DefaultUserID = "default_user"

const sessionIDPrefix = "session_"

// hostPrefix matches a full repository address up to and including the
// code-hosting domain. Only a complete match is stripped.
var hostPrefix = regexp.MustCompile(`^https?://(www\.)?github\.com/`)

// Session describes a resolved conversational session with the backend agent.
// It is held in memory by a chat window and never persisted by the client.
type Session struct {
	ID         string
	UserID     string
	Repository string
}

// NewSession returns the locally derived descriptor for repository and userID.
// An empty userID falls back to DefaultUserID.
func NewSession(repository, userID string) Session {
	if userID == "" {
		userID = DefaultUserID
	}
	return Session{
		ID:         DeriveSessionID(repository),
		UserID:     userID,
		Repository: NormalizeRepository(repository),
	}
}

// NormalizeRepository reduces a repository address to its owner/name form.
// Bare paths pass through; a single trailing slash is removed.
func NormalizeRepository(repository string) string {
	name := hostPrefix.ReplaceAllString(repository, "")
	return strings.TrimSuffix(name, "/")
}

// DeriveSessionID maps a repository address to its session identifier, e.g.
// "https://github.com/acme/widgets/" and "acme/widgets" both become
// "session_acme_widgets". It is pure and total.
func DeriveSessionID(repository string) string {
	return sessionIDPrefix + strings.ReplaceAll(NormalizeRepository(repository), "/", "_")
}

// MergeSession reconciles a possibly sparse descriptor returned by the backend
// with the locally derived one. Non-empty remote fields win.
func MergeSession(remote, local Session) Session {
	merged := local
	if remote.ID != "" {
		merged.ID = remote.ID
	}
	if remote.UserID != "" {
		merged.UserID = remote.UserID
	}
	if remote.Repository != "" {
		merged.Repository = remote.Repository
	}
	return merged
}
