package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KyahWill/osci"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Chat window notices and fallbacks.
const (
	sessionWarning     = "⚠️ Warning: Could not establish a session with the agent. Some features may not work correctly."
	sessionRefused     = "❌ Could not establish a session with the agent. Please try again."
	replyFailed        = "I apologize, but I encountered an error processing your request."
	backendUnreachable = "Sorry, I'm having trouble connecting to the backend service. Please make sure it's running."
)

// initState tracks the one-shot session initialization of a chat window.
type initState int

const (
	initUninitialized initState = iota
	initInitializing
	initDone
)

// ChatModel is the chat window for one repository. It resolves a session
// once when opened and again before a send if none is held.
type ChatModel struct {
	// Input is the message input. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript. Exported for test access.
	Viewport viewport.Model

	id       string // tags the results of this window's requests
	ctx      context.Context
	sessions osci.SessionService
	chat     osci.ChatService
	logger   zerolog.Logger
	theme    osci.Theme
	styles   Styles
	keys     keyMap

	url    string
	userID string
	files  []osci.RepoFile

	state      initState
	session    *osci.Session
	sessionErr bool
	waiting    bool // a session or reply request is in flight

	messages []osci.Message
	blocks   []MessageBlock

	width, height int
	now           func() time.Time
}

// ChatConfig holds what a chat window needs from the shell.
type ChatConfig struct {
	Context  context.Context
	Sessions osci.SessionService
	Chat     osci.ChatService
	Logger   zerolog.Logger
	Theme    osci.Theme

	URL    string
	UserID string
	Files  []osci.RepoFile

	// History is an earlier conversation shown above the greeting.
	History []osci.Message

	Width, Height int
}

// NewChat creates a chat window greeting the user. The session is not
// resolved until Open.
func NewChat(cfg ChatConfig) ChatModel {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Placeholder = "Ask about the codebase..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	c := ChatModel{
		Input:    ti,
		Viewport: viewport.New(0, 0),
		id:       uuid.NewString(),
		ctx:      ctx,
		sessions: cfg.Sessions,
		chat:     cfg.Chat,
		logger:   cfg.Logger,
		theme:    cfg.Theme,
		styles:   NewStyles(cfg.Theme),
		keys:     defaultKeyMap(),
		url:      cfg.URL,
		userID:   cfg.UserID,
		files:    cfg.Files,
		now:      time.Now,
	}
	if c.userID == "" {
		c.userID = osci.DefaultUserID
	}
	for _, m := range cfg.History {
		c = c.push(m)
	}
	greeting := fmt.Sprintf("Hello! I'm ready to help you understand the codebase from %s. I have access to %d files. What would you like to know?", cfg.URL, len(cfg.Files))
	c = c.appendMessage(osci.RoleAssistant, greeting, false)
	return c.Resize(cfg.Width, cfg.Height)
}

// Open starts session initialization. It has an effect only the first time;
// later calls return a nil command.
func (c ChatModel) Open() (ChatModel, tea.Cmd) {
	if c.state != initUninitialized {
		return c, nil
	}
	c.state = initInitializing
	c.waiting = true
	return c, c.ensureCmd("")
}

// Initialized reports whether the one-shot initialization has completed.
func (c ChatModel) Initialized() bool { return c.state == initDone }

// Busy reports whether the window is waiting on the backend.
func (c ChatModel) Busy() bool { return c.waiting }

// Session returns the resolved session, if any.
func (c ChatModel) Session() (osci.Session, bool) {
	if c.session == nil {
		return osci.Session{}, false
	}
	return *c.session, true
}

// Transcript returns the conversation held by the window.
func (c ChatModel) Transcript() osci.Transcript {
	t := osci.Transcript{
		Repository: osci.NormalizeRepository(c.url),
		Messages:   append([]osci.Message(nil), c.messages...),
	}
	if c.session != nil {
		t.SessionID = c.session.ID
	}
	return t
}

// Resize fits the window to a terminal of the given size.
func (c ChatModel) Resize(width, height int) ChatModel {
	c.width, c.height = width, height
	// Border, header, subtitle, input and help lines.
	c.Viewport.Width = max(width-4, 10)
	c.Viewport.Height = max(height-7, 1)
	c.Input.Width = max(width-8, 10)
	c.Viewport.SetContent(c.renderContent())
	c.Viewport.GotoBottom()
	return c
}

// Update implements the chat window's event handling.
func (c ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionMsg:
		if msg.Window != c.id {
			return c, nil
		}
		return c.handleSession(msg)

	case ReplyMsg:
		if msg.Window != c.id {
			return c, nil
		}
		return c.handleReply(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keys.Close):
			t := c.Transcript()
			return c, func() tea.Msg { return ChatClosedMsg{Transcript: t} }
		case key.Matches(msg, c.keys.Submit):
			return c.submit()
		case key.Matches(msg, c.keys.PageUp, c.keys.PageDown, c.keys.Up, c.keys.Down):
			var cmd tea.Cmd
			c.Viewport, cmd = c.Viewport.Update(msg)
			return c, cmd
		}
	}

	var cmd tea.Cmd
	c.Input, cmd = c.Input.Update(msg)
	return c, cmd
}

func (c ChatModel) submit() (ChatModel, tea.Cmd) {
	text := strings.TrimSpace(c.Input.Value())
	if text == "" || c.waiting {
		return c, nil
	}
	c.waiting = true
	if c.session == nil {
		return c, c.ensureCmd(text)
	}
	return c.send(text)
}

// send appends the user message and forwards it to the agent.
func (c ChatModel) send(text string) (ChatModel, tea.Cmd) {
	c = c.appendMessage(osci.RoleUser, text, false)
	c.Input.SetValue("")
	c.waiting = true

	req := osci.ChatRequest{
		Message:    text,
		Repository: osci.NormalizeRepository(c.url),
		Files:      c.files,
		SessionID:  c.session.ID,
		UserID:     c.userID,
	}
	id, ctx, svc := c.id, c.ctx, c.chat
	return c, func() tea.Msg {
		reply, err := svc.SendMessage(ctx, req)
		return ReplyMsg{Window: id, Reply: reply, Err: err}
	}
}

func (c ChatModel) ensureCmd(pending string) tea.Cmd {
	id, ctx, svc, url, user := c.id, c.ctx, c.sessions, c.url, c.userID
	return func() tea.Msg {
		s, err := osci.EnsureSession(ctx, svc, osci.NormalizeRepository(url), user)
		return SessionMsg{Window: id, Session: s, Err: err, Pending: pending}
	}
}

func (c ChatModel) handleSession(msg SessionMsg) (ChatModel, tea.Cmd) {
	initializing := c.state == initInitializing
	if initializing {
		c.state = initDone
	}
	c.waiting = false

	if msg.Err != nil {
		c.logger.Warn().Err(msg.Err).Str("repository", c.url).Msg("session unavailable")
		c.sessionErr = true
		switch {
		case initializing:
			c = c.appendMessage(osci.RoleAssistant, sessionWarning, true)
		case msg.Pending != "":
			c = c.appendMessage(osci.RoleAssistant, sessionRefused, true)
		}
		return c, nil
	}

	s := msg.Session
	c.session = &s
	c.sessionErr = false
	c.logger.Info().Str("session_id", s.ID).Msg("session initialized")
	if msg.Pending != "" {
		return c.send(msg.Pending)
	}
	return c, nil
}

func (c ChatModel) handleReply(msg ReplyMsg) ChatModel {
	c.waiting = false
	var be *osci.BackendError
	switch {
	case msg.Err == nil && msg.Reply != "":
		return c.appendMessage(osci.RoleAssistant, msg.Reply, false)
	case msg.Err == nil, errors.As(msg.Err, &be):
		return c.appendMessage(osci.RoleAssistant, replyFailed, true)
	default:
		return c.appendMessage(osci.RoleAssistant, backendUnreachable, true)
	}
}

func (c ChatModel) appendMessage(role osci.Role, content string, notice bool) ChatModel {
	return c.push(osci.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Notice:    notice,
		Timestamp: c.now(),
	})
}

func (c ChatModel) push(m osci.Message) ChatModel {
	c.messages = append(c.messages[:len(c.messages):len(c.messages)], m)
	c.blocks = append(c.blocks[:len(c.blocks):len(c.blocks)], blockFor(m, c.theme, c.styles))
	c.Viewport.SetContent(c.renderContent())
	c.Viewport.GotoBottom()
	return c
}

func (c ChatModel) renderContent() string {
	var b strings.Builder
	for i, block := range c.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(c.Viewport.Width))
	}
	return b.String()
}

// View renders the chat window inside a bordered modal.
func (c ChatModel) View() string {
	var b strings.Builder
	b.WriteString(c.header())
	b.WriteString("\n")
	b.WriteString(c.styles.Muted.Render("Ask questions about " + repoShortName(c.url)))
	b.WriteString("\n")
	b.WriteString(c.Viewport.View())
	b.WriteString("\n")
	switch {
	case c.state == initInitializing:
		b.WriteString(c.styles.Muted.Render("Connecting to the agent..."))
	case c.waiting:
		b.WriteString(c.styles.Muted.Render("Thinking..."))
	default:
		b.WriteString(c.Input.View())
	}
	b.WriteString("\n")
	b.WriteString(c.styles.Muted.Render(helpLine(c.keys.Submit, c.keys.PageUp, c.keys.Close)))
	return c.styles.Modal.Width(max(c.width-2, 0)).Render(b.String())
}

func (c ChatModel) header() string {
	title := c.styles.Accent.Render("💬 Codebase Chat")
	var badge string
	switch {
	case c.session != nil:
		badge = c.styles.BadgeOK.Render("✓ Connected")
	case c.sessionErr:
		badge = c.styles.BadgeFail.Render("⚠ Session Error")
	}
	if badge == "" {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", badge)
}

// repoShortName returns the last two path segments of a repository address.
func repoShortName(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.Join(parts, "/")
}
