package bubbletea

import (
	"strconv"

	"github.com/KyahWill/osci"
	"github.com/charmbracelet/lipgloss"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg lipgloss.Style
	Notice  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style

	Selected  lipgloss.Style
	BadgeOK   lipgloss.Style
	BadgeFail lipgloss.Style
	Modal     lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t osci.Theme) Styles {
	return Styles{
		UserMsg:   lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Notice:    lipgloss.NewStyle().Foreground(ansiColor(t.Notice)),
		Error:     lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:   lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Reverse(true),
		BadgeOK:   lipgloss.NewStyle().Foreground(ansiColor(t.Success)).Bold(true),
		BadgeFail: lipgloss.NewStyle().Foreground(ansiColor(t.Error)).Bold(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ansiColor(t.Border)).
			Padding(0, 1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
