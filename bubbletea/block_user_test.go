package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/KyahWill/osci"
	bt "github.com/KyahWill/osci/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(osci.DefaultTheme())

	t.Run("prefixes the prompt marker", func(t *testing.T) {
		t.Parallel()
		view := bt.NewUserMessageBlock("where is main?", styles).View(80)
		assert.Contains(t, view, "> ")
		assert.Contains(t, view, "where is main?")
	})

	t.Run("pads each line to full width", func(t *testing.T) {
		t.Parallel()
		view := bt.NewUserMessageBlock("test", styles).View(40)
		for _, line := range strings.Split(view, "\n") {
			assert.Equal(t, 40, lipgloss.Width(line))
		}
	})

	t.Run("wraps long text", func(t *testing.T) {
		t.Parallel()
		long := "how are the handlers registered and which package owns the router setup"
		view := bt.NewUserMessageBlock(long, styles).View(30)
		assert.Greater(t, len(strings.Split(view, "\n")), 1)
		assert.Contains(t, view, "setup")
	})
}

func TestNoticeBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(osci.DefaultTheme())

	t.Run("warning text", func(t *testing.T) {
		t.Parallel()
		view := bt.NewNoticeBlock("⚠️ Warning: careful", styles).View(80)
		assert.Contains(t, view, "Warning: careful")
	})

	t.Run("error text", func(t *testing.T) {
		t.Parallel()
		view := bt.NewNoticeBlock("❌ failed", styles).View(80)
		assert.Contains(t, view, "failed")
	})
}
