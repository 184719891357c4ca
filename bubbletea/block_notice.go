package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*NoticeBlock)(nil)

// NoticeBlock renders a warning or error raised by the client itself.
// Messages starting with the cross mark are shown in the error color.
type NoticeBlock struct {
	text   string
	styles Styles
}

// NewNoticeBlock creates a NoticeBlock.
func NewNoticeBlock(text string, styles Styles) *NoticeBlock {
	return &NoticeBlock{text: text, styles: styles}
}

func (b *NoticeBlock) View(width int) string {
	style := b.styles.Notice
	if strings.HasPrefix(b.text, "❌") {
		style = b.styles.Error
	}
	return lipgloss.NewStyle().Width(width).Render(style.Render(b.text))
}
