// Package bubbletea provides the Bubble Tea TUI for osci: the repository
// form, the file browser, the file editor and the chat window.
package bubbletea

import (
	"context"

	"github.com/KyahWill/osci"
	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits and returns the final model. The context is used for graceful
// shutdown: when cancelled, the program quits.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// ValidatedMsg reports the outcome of asking the backend to validate URL.
type ValidatedMsg struct {
	URL string
	Err error
}

// GatheredMsg reports the files gathered for URL.
type GatheredMsg struct {
	URL        string
	Repository osci.Repository
	Err        error
}

// SessionMsg reports the outcome of resolving a session. Window names the
// chat window that asked; Pending holds the message that was waiting on the
// session, if any.
type SessionMsg struct {
	Window  string
	Session osci.Session
	Err     error
	Pending string
}

// ReplyMsg carries the agent's answer to a chat message sent from Window.
type ReplyMsg struct {
	Window string
	Reply  string
	Err    error
}

// FileSavedMsg is emitted by the editor when the user saves a file.
type FileSavedMsg struct {
	Index   int
	Path    string
	Content string
}

// EditorClosedMsg is emitted when the editor is dismissed.
type EditorClosedMsg struct{}

// ChatClosedMsg is emitted when the chat window is dismissed. It carries the
// conversation held by the window at the time.
type ChatClosedMsg struct {
	Transcript osci.Transcript
}
