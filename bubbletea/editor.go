package bubbletea

import (
	"fmt"
	"strings"

	"github.com/KyahWill/osci"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"
)

// EditorModel is the modal editor for a single repository file. Saving
// hands the new content back to the shell; nothing is written to disk.
type EditorModel struct {
	// Area is the editing component. Exported for test access.
	Area textarea.Model

	index  int
	path   string
	saved  string
	styles Styles
	keys   keyMap
}

// NewEditor opens file, which sits at index in the shell's file list.
func NewEditor(index int, file osci.RepoFile, styles Styles, width, height int) EditorModel {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.SetValue(file.Content)
	ta.Focus()

	e := EditorModel{
		Area:   ta,
		index:  index,
		path:   file.DisplayPath(),
		saved:  file.Content,
		styles: styles,
		keys:   defaultKeyMap(),
	}
	return e.resize(width, height)
}

// Modified reports whether the buffer differs from the last saved content.
func (e EditorModel) Modified() bool {
	return e.Area.Value() != e.saved
}

// Update handles editor keys. Ctrl+S emits FileSavedMsg, Esc emits
// EditorClosedMsg; everything else goes to the text area.
func (e EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, e.keys.Save):
			e.saved = e.Area.Value()
			saved := FileSavedMsg{Index: e.index, Path: e.path, Content: e.saved}
			return e, func() tea.Msg { return saved }
		case key.Matches(msg, e.keys.Close):
			return e, func() tea.Msg { return EditorClosedMsg{} }
		}
	}
	var cmd tea.Cmd
	e.Area, cmd = e.Area.Update(msg)
	return e, cmd
}

func (e EditorModel) resize(width, height int) EditorModel {
	// Border, padding, title and status lines.
	e.Area.SetWidth(max(width-4, 10))
	e.Area.SetHeight(max(height-6, 3))
	return e
}

// View renders the editor inside a bordered modal.
func (e EditorModel) View() string {
	var b strings.Builder
	b.WriteString(e.styles.Accent.Render(e.path))
	b.WriteString("\n")
	b.WriteString(e.Area.View())
	b.WriteString("\n")
	b.WriteString(e.status())
	return e.styles.Modal.Render(b.String())
}

func (e EditorModel) status() string {
	value := e.Area.Value()
	s := fmt.Sprintf("Lines: %d • Characters: %d", e.Area.LineCount(), uniseg.GraphemeClusterCount(value))
	if e.Modified() {
		s += " • " + e.styles.Notice.Render("Modified")
	}
	return s + "  " + e.styles.Muted.Render(helpLine(e.keys.Save, e.keys.Close))
}
