package bubbletea

import (
	"context"
	"errors"
	"strings"

	"github.com/KyahWill/osci"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Form messages.
const (
	msgValidateFailed  = "Failed to validate GitHub URL"
	msgValidateOffline = "Failed to connect to backend. Make sure it's running."
	msgValidated       = "✓ GitHub URL validated successfully!"
	msgGatherFailed    = "Failed to gather files"
	msgGatherOffline   = "Failed to gather files from GitHub repository"
	msgEmptyURL        = "Please enter a GitHub URL"
	msgInvalidURL      = "Invalid GitHub URL format. Expected: https://github.com/username/repository"
)

var _ tea.Model = Model{}

type focusArea int

const (
	focusURL focusArea = iota
	focusFiles
	focusFilter
)

// Services are the backend operations the TUI drives.
type Services struct {
	Repositories osci.RepositoryService
	Sessions     osci.SessionService
	Chat         osci.ChatService
}

// Option configures a Model.
type Option func(*Model)

// WithUserID sets the user the chat sessions are opened for.
func WithUserID(id string) Option {
	return func(m *Model) { m.userID = id }
}

// WithLogger sets the logger for session and editor events.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithRepositoryURL pre-fills the URL input.
func WithRepositoryURL(url string) Option {
	return func(m *Model) { m.Input.SetValue(url) }
}

// WithHistory sets an earlier conversation. Chat windows opened for the same
// repository show it above their greeting.
func WithHistory(t osci.Transcript) Option {
	return func(m *Model) { m.history = t }
}

// WithContext sets the parent context of backend calls.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// Model is the root Bubble Tea model: the repository form, the file browser
// and whichever modal (editor or chat) is open.
type Model struct {
	// Input is the repository URL input. Exported for test access.
	Input textinput.Model
	// Filter is the glob filter input of the file list.
	Filter textinput.Model

	svc    Services
	ctx    context.Context
	logger zerolog.Logger
	userID string
	theme  osci.Theme
	styles Styles
	keys   keyMap

	focus     focusArea
	busy      bool
	validated bool
	status    string
	statusErr bool

	repoName string
	files    fileList
	gathered bool

	editor *EditorModel
	chat   *ChatModel

	transcript osci.Transcript
	history    osci.Transcript
	hasChatted bool

	width, height int
}

// New creates the root model.
func New(svc Services, theme osci.Theme, opts ...Option) Model {
	in := textinput.New()
	in.Placeholder = "https://github.com/username/repository"
	in.Prompt = "URL: "
	in.CharLimit = 0
	in.Focus()

	filter := textinput.New()
	filter.Placeholder = "**/*.go"
	filter.Prompt = "/"
	filter.CharLimit = 0

	m := Model{
		Input:  in,
		Filter: filter,
		svc:    svc,
		ctx:    context.Background(),
		logger: zerolog.Nop(),
		userID: osci.DefaultUserID,
		theme:  theme,
		styles: NewStyles(theme),
		keys:   defaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Validated reports whether the current URL passed validation.
func (m Model) Validated() bool { return m.validated }

// Busy reports whether a form request is in flight.
func (m Model) Busy() bool { return m.busy }

// Status returns the current form message and whether it is an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Files returns the gathered files with any saved edits applied.
func (m Model) Files() []osci.RepoFile { return m.files.files }

// Chat returns the open chat window, if any.
func (m Model) Chat() (ChatModel, bool) {
	if m.chat == nil {
		return ChatModel{}, false
	}
	return *m.chat, true
}

// Editor returns the open editor, if any.
func (m Model) Editor() (EditorModel, bool) {
	if m.editor == nil {
		return EditorModel{}, false
	}
	return *m.editor, true
}

// Transcript returns the conversation of the open chat window, or of the last
// one closed. The bool is false when no chat was ever opened.
func (m Model) Transcript() (osci.Transcript, bool) {
	if m.chat != nil {
		return m.chat.Transcript(), true
	}
	return m.transcript, m.hasChatted
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case ValidatedMsg:
		return m.handleValidated(msg), nil

	case GatheredMsg:
		return m.handleGathered(msg), nil

	case FileSavedMsg:
		m.files = m.files.update(msg.Index, msg.Content)
		m.logger.Info().Str("path", msg.Path).Int("bytes", len(msg.Content)).Msg("file saved")
		return m, nil

	case EditorClosedMsg:
		m.editor = nil
		return m, nil

	case ChatClosedMsg:
		m.chat = nil
		m.transcript = msg.Transcript
		return m, nil

	case SessionMsg, ReplyMsg:
		// Results of a window closed while the request was in flight.
		if m.chat == nil {
			m.logger.Debug().Msg("dropping result for closed chat window")
			return m, nil
		}
	}

	switch {
	case m.editor != nil:
		e, cmd := m.editor.Update(msg)
		m.editor = &e
		return m, cmd
	case m.chat != nil:
		c, cmd := m.chat.Update(msg)
		m.chat = &c
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) resize(width, height int) Model {
	m.width, m.height = width, height
	m.Input.Width = max(width-len(m.Input.Prompt)-1, 10)
	m.Filter.Width = max(width-2, 10)
	if m.editor != nil {
		e := m.editor.resize(width, height)
		m.editor = &e
	}
	if m.chat != nil {
		c := m.chat.Resize(width, height)
		m.chat = &c
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusFiles:
		return m.handleFilesKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.validate()
	case key.Matches(msg, m.keys.Gather):
		return m.gather()
	case key.Matches(msg, m.keys.Chat):
		return m.openChat()
	case key.Matches(msg, m.keys.Focus):
		if m.gathered && len(m.files.files) > 0 {
			m.focus = focusFiles
			m.Input.Blur()
		}
		return m, nil
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != before {
		m = m.resetForm()
	}
	return m, cmd
}

func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Close):
		m.focus = focusURL
		cmd := m.Input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.files = m.files.move(-1, m.listHeight())
	case key.Matches(msg, m.keys.Down):
		m.files = m.files.move(1, m.listHeight())
	case key.Matches(msg, m.keys.Filter):
		m.focus = focusFilter
		cmd := m.Filter.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Submit):
		if i, ok := m.files.selected(); ok {
			e := NewEditor(i, m.files.files[i], m.styles, m.width, m.height)
			m.editor = &e
		}
	case key.Matches(msg, m.keys.Chat):
		return m.openChat()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.focus = focusFiles
		m.Filter.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Close):
		m.Filter.SetValue("")
		m.Filter.Blur()
		m.files = m.files.filter("")
		m.focus = focusFiles
		return m, nil
	}
	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	if m.Filter.Value() != m.files.pattern {
		m.files = m.files.filter(m.Filter.Value())
	}
	return m, cmd
}

// resetForm clears validation and gathered files after the URL changes.
func (m Model) resetForm() Model {
	m.validated = false
	m.gathered = false
	m.status = ""
	m.statusErr = false
	m.repoName = ""
	m.files = fileList{}
	m.Filter.SetValue("")
	return m
}

func (m Model) validate() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	url := strings.TrimSpace(m.Input.Value())
	if err := osci.ValidateRepositoryURL(url); err != nil {
		m = m.resetForm()
		m.statusErr = true
		m.status = msgInvalidURL
		if errors.Is(err, osci.ErrEmptyRepositoryURL) {
			m.status = msgEmptyURL
		}
		return m, nil
	}
	m = m.resetForm()
	m.busy = true
	m.status = "Validating..."
	ctx, svc := m.ctx, m.svc.Repositories
	return m, func() tea.Msg {
		return ValidatedMsg{URL: url, Err: svc.ValidateRepository(ctx, url)}
	}
}

func (m Model) handleValidated(msg ValidatedMsg) Model {
	m.busy = false
	if msg.URL != strings.TrimSpace(m.Input.Value()) {
		return m
	}
	if msg.Err != nil {
		m.validated = false
		m.statusErr = true
		m.status = failureText(msg.Err, msgValidateFailed, msgValidateOffline)
		return m
	}
	m.validated = true
	m.statusErr = false
	m.status = msgValidated
	return m
}

func (m Model) gather() (tea.Model, tea.Cmd) {
	if m.busy || !m.validated {
		return m, nil
	}
	m.busy = true
	m.status = "Gathering files..."
	m.statusErr = false
	url := strings.TrimSpace(m.Input.Value())
	ctx, svc := m.ctx, m.svc.Repositories
	return m, func() tea.Msg {
		repo, err := svc.GatherFiles(ctx, url)
		return GatheredMsg{URL: url, Repository: repo, Err: err}
	}
}

func (m Model) handleGathered(msg GatheredMsg) Model {
	m.busy = false
	if msg.URL != strings.TrimSpace(m.Input.Value()) {
		return m
	}
	if msg.Err != nil {
		m.statusErr = true
		m.status = failureText(msg.Err, msgGatherFailed, msgGatherOffline)
		return m
	}
	m.statusErr = false
	m.status = msgValidated
	m.gathered = true
	m.repoName = msg.Repository.Name
	m.files = newFileList(msg.Repository.Files)
	m.Filter.SetValue("")
	return m
}

func (m Model) openChat() (tea.Model, tea.Cmd) {
	if !m.validated || len(m.files.files) == 0 {
		return m, nil
	}
	url := strings.TrimSpace(m.Input.Value())
	var history []osci.Message
	if m.history.Repository == osci.NormalizeRepository(url) {
		history = m.history.Messages
	}
	c := NewChat(ChatConfig{
		History:  history,
		Context:  m.ctx,
		Sessions: m.svc.Sessions,
		Chat:     m.svc.Chat,
		Logger:   m.logger,
		Theme:    m.theme,
		URL:      url,
		UserID:   m.userID,
		Files:    m.files.files,
		Width:    m.width,
		Height:   m.height,
	})
	c, cmd := c.Open()
	m.chat = &c
	m.hasChatted = true
	return m, cmd
}

// failureText picks the message shown for a failed backend call: the
// backend's own message, fallback for a backend failure without one, or
// offline when the backend could not be reached.
func failureText(err error, fallback, offline string) string {
	var be *osci.BackendError
	if errors.As(err, &be) {
		return osci.BackendMessage(err, fallback)
	}
	return offline
}

func (m Model) listHeight() int {
	// Title, URL, status, blank, list header, blank and help lines.
	return max(m.height-8, 3)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.editor != nil {
		return m.editor.View()
	}
	if m.chat != nil {
		return m.chat.View()
	}

	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("OSCI · Open Source Chat-Inator"))
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n")
	switch {
	case m.status == "":
	case m.statusErr:
		b.WriteString(m.styles.Error.Render(m.status))
	case m.busy:
		b.WriteString(m.styles.Muted.Render(m.status))
	default:
		b.WriteString(m.styles.Success.Render(m.status))
	}
	b.WriteString("\n")

	if m.gathered {
		b.WriteString("\n")
		b.WriteString(m.files.view(m.repoName, m.width, m.listHeight(), m.focus != focusURL, m.styles))
		b.WriteString("\n")
		if m.focus == focusFilter {
			b.WriteString(m.Filter.View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	switch m.focus {
	case focusFiles:
		return helpLine(m.keys.Up, m.keys.Down, m.keys.Submit, m.keys.Filter, m.keys.Chat, m.keys.Focus, m.keys.Quit)
	case focusFilter:
		return helpLine(m.keys.Submit, m.keys.Close)
	}
	bindings := []key.Binding{m.keys.Submit}
	if m.validated {
		bindings = append(bindings, m.keys.Gather)
	}
	if m.validated && len(m.files.files) > 0 {
		bindings = append(bindings, m.keys.Focus, m.keys.Chat)
	}
	return helpLine(append(bindings, m.keys.Quit)...)
}
