package osci

import "time"

// Message is one entry of a chat transcript.
type Message struct {
	ID      string
	Role    Role
	Content string
	// Notice marks warnings and errors produced by the client itself rather
	// than by the agent.
	Notice    bool
	Timestamp time.Time
}

// Transcript is the conversation held by a chat window.
type Transcript struct {
	Repository string
	SessionID  string
	Messages   []Message
}
