package bubbletea

import (
	"fmt"
	"strings"

	"github.com/KyahWill/osci"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-runewidth"
)

// fileList is the browsable list of gathered files. visible holds indices into
// files that pass the current glob filter.
type fileList struct {
	files   []osci.RepoFile
	visible []int
	cursor  int // position within visible
	offset  int // first visible row on screen
	pattern string
	err     error
}

func newFileList(files []osci.RepoFile) fileList {
	l := fileList{files: files}
	return l.filter("")
}

// filter narrows the list to paths matching pattern. An empty pattern shows
// every file; an invalid one shows every file and records the error.
func (l fileList) filter(pattern string) fileList {
	l.pattern = pattern
	l.err = nil
	l.visible = nil
	valid := pattern == "" || doublestar.ValidatePattern(pattern)
	if !valid {
		l.err = fmt.Errorf("invalid filter pattern %q", pattern)
	}
	for i, f := range l.files {
		if valid && pattern != "" {
			if ok, _ := doublestar.Match(pattern, f.DisplayPath()); !ok {
				continue
			}
		}
		l.visible = append(l.visible, i)
	}
	l.cursor = 0
	l.offset = 0
	return l
}

func (l fileList) move(delta, height int) fileList {
	if len(l.visible) == 0 {
		return l
	}
	l.cursor = max(0, min(len(l.visible)-1, l.cursor+delta))
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if height > 0 && l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}
	return l
}

// selected returns the index into files of the highlighted row.
func (l fileList) selected() (int, bool) {
	if l.cursor >= len(l.visible) {
		return 0, false
	}
	return l.visible[l.cursor], true
}

// update replaces the content of files[i]. The backing array is copied so
// earlier copies of the list keep their contents.
func (l fileList) update(i int, content string) fileList {
	if i < 0 || i >= len(l.files) {
		return l
	}
	files := make([]osci.RepoFile, len(l.files))
	copy(files, l.files)
	files[i].Content = content
	l.files = files
	return l
}

// view renders the list under a header naming the repository, as reported
// by the backend.
func (l fileList) view(name string, width, height int, focused bool, styles Styles) string {
	var b strings.Builder
	header := fmt.Sprintf("Repository Files (%d)", len(l.files))
	if name != "" {
		header = name + " · " + header
	}
	if l.pattern != "" {
		header += styles.Muted.Render(fmt.Sprintf("  filter: %s (%d shown)", l.pattern, len(l.visible)))
	}
	b.WriteString(styles.Accent.Render(header))
	if l.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.Error.Render(l.err.Error()))
	}
	end := len(l.visible)
	if height > 0 {
		end = min(end, l.offset+height)
	}
	for row := l.offset; row < end; row++ {
		line := fileRow(l.files[l.visible[row]], width)
		if focused && row == l.cursor {
			line = styles.Selected.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// fileRow lays out one file as "path ... size", fitted to width cells.
func fileRow(f osci.RepoFile, width int) string {
	size := ""
	if f.Size > 0 {
		size = fmt.Sprintf("%.2f KB", f.SizeKB())
	}
	pathWidth := width - runewidth.StringWidth(size) - 3
	if pathWidth < 8 {
		pathWidth = 8
	}
	path := runewidth.Truncate(f.DisplayPath(), pathWidth, "…")
	return "  " + runewidth.FillRight(path, pathWidth) + " " + size
}
