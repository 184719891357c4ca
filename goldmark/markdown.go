// Package goldmark renders assistant markdown to ANSI-styled terminal output
// using goldmark for parsing, chroma for code highlighting and lipgloss for
// styling.
package goldmark

import "github.com/KyahWill/osci"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// highlighted and rendered at full width without reflow. GFM tables and
// strikethrough are supported.
func Render(source string, width int, theme osci.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
