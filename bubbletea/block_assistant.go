package bubbletea

import (
	"github.com/KyahWill/osci"
	"github.com/KyahWill/osci/goldmark"
)

var _ MessageBlock = (*AssistantTextBlock)(nil)

// AssistantTextBlock renders an agent reply as markdown. Rendering is cached
// per width since replies never change once received.
type AssistantTextBlock struct {
	text    string
	theme   osci.Theme
	byWidth map[int]string
}

// NewAssistantTextBlock creates an AssistantTextBlock.
func NewAssistantTextBlock(text string, theme osci.Theme) *AssistantTextBlock {
	return &AssistantTextBlock{
		text:    text,
		theme:   theme,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantTextBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	rendered := goldmark.Render(b.text, width, b.theme)
	b.byWidth[width] = rendered
	return rendered
}
