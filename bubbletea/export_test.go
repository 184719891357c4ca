package bubbletea

import (
	"time"

	"github.com/KyahWill/osci"
)

// FileRow exports fileRow for testing.
func FileRow(f osci.RepoFile, width int) string {
	return fileRow(f, width)
}

// VisibleFiles returns the paths currently shown by the file list.
func VisibleFiles(m Model) []string {
	paths := make([]string, 0, len(m.files.visible))
	for _, i := range m.files.visible {
		paths = append(paths, m.files.files[i].DisplayPath())
	}
	return paths
}

// FilterErr returns the file list's filter error.
func FilterErr(m Model) error {
	return m.files.err
}

// SetClock overrides the timestamp source of a chat window.
func SetClock(c ChatModel, now func() time.Time) ChatModel {
	c.now = now
	return c
}
