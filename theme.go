package osci

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg int // User message accent
	Notice  int // Client warnings in the transcript
	Error   int // Error messages
	Success int // Success indicators
	Muted   int // Status bar, placeholders, timestamps
	CodeBg  int // Code block background
	Accent  int // Headings, links, titles
	Border  int // Modal borders

	// CodeStyle names the chroma style used for fenced code blocks.
	CodeStyle string
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Notice:    3,
		Error:     1,
		Success:   2,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
		Border:    8,
		CodeStyle: "monokai",
	}
}
