package bubbletea_test

import (
	"testing"

	"github.com/KyahWill/osci"
	bt "github.com/KyahWill/osci/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(osci.DefaultTheme())

	assert.Equal(t, lipgloss.Color("4"), styles.UserMsg.GetForeground())
	assert.True(t, styles.UserMsg.GetBold())
	assert.Equal(t, lipgloss.Color("3"), styles.Notice.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("2"), styles.Success.GetForeground())
	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())
	assert.Equal(t, lipgloss.Color("5"), styles.Accent.GetForeground())
	assert.True(t, styles.Selected.GetReverse())
	assert.Equal(t, lipgloss.Color("2"), styles.BadgeOK.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), styles.BadgeFail.GetForeground())
	assert.Equal(t, lipgloss.Color("8"), styles.Modal.GetBorderTopForeground())
}

func TestNewStyles_NegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(osci.Theme{Error: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.Error.GetForeground())
}
