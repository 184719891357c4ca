package bubbletea

import "github.com/KyahWill/osci"

// MessageBlock is a renderable entry in the chat transcript.
// View takes a width so the chat window controls layout and blocks are
// testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// blockFor builds the block that displays msg.
func blockFor(msg osci.Message, theme osci.Theme, styles Styles) MessageBlock {
	switch {
	case msg.Notice:
		return NewNoticeBlock(msg.Content, styles)
	case msg.Role == osci.RoleUser:
		return NewUserMessageBlock(msg.Content, styles)
	default:
		return NewAssistantTextBlock(msg.Content, theme)
	}
}
