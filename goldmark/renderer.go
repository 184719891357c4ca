package goldmark

import (
	"strconv"
	"strings"

	"github.com/KyahWill/osci"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// gfm parses GitHub-flavored markdown. Parsers are safe for concurrent use.
var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// minWidth is the narrowest column nested blocks are wrapped to.
const minWidth = 10

type ansiRenderer struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	accent    lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
	strike    lipgloss.Style
	code      lipgloss.Style
	codeStyle string
}

func newRenderer(theme osci.Theme) *ansiRenderer {
	return &ansiRenderer{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		accent:    lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
		strike:    lipgloss.NewStyle().Strikethrough(true),
		code:      lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)).Bold(true),
		codeStyle: theme.CodeStyle,
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(source []byte, width int) string {
	doc := gfm.Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))
	p := page{ansiRenderer: r, src: source}
	return strings.Join(p.section(doc, width), "\n")
}

// page renders the nodes of one parsed document. Block renderers return
// finished terminal lines so containers can prefix them.
type page struct {
	*ansiRenderer
	src []byte
}

// section renders the children of parent as blocks separated by a blank line.
func (p page) section(parent ast.Node, width int) []string {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		lines := p.block(n, width)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out
}

func (p page) block(n ast.Node, width int) []string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return p.wrap(p.span(n), width)
	case *ast.Heading:
		return p.wrap(p.accent.Render(p.span(n)), width)
	case *ast.FencedCodeBlock:
		return p.fenced(n)
	case *ast.CodeBlock:
		return p.gutter(strings.Split(strings.TrimRight(p.raw(n), "\n"), "\n"))
	case *ast.List:
		return p.list(n, width)
	case *ast.Blockquote:
		bar := p.muted.Render("┃") + " "
		return hang(bar, bar, p.section(n, max(width-2, minWidth)))
	case *ast.ThematicBreak:
		return []string{p.muted.Render("---")}
	case *east.Table:
		return strings.Split(p.table(n, width), "\n")
	case *ast.HTMLBlock:
		if raw := strings.TrimRight(p.raw(n), "\n"); raw != "" {
			return strings.Split(raw, "\n")
		}
		return nil
	default:
		return p.section(n, width)
	}
}

func (p page) wrap(s string, width int) []string {
	return strings.Split(lipgloss.NewStyle().Width(width).Render(s), "\n")
}

// raw returns the source lines of a leaf block.
func (p page) raw(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(p.src))
	}
	return b.String()
}

// fenced renders a fenced block highlighted for its language, labelled
// above the code. Code lines are never reflowed.
func (p page) fenced(n *ast.FencedCodeBlock) []string {
	lang := string(n.Language(p.src))
	var out []string
	if lang != "" {
		out = append(out, p.muted.Render(lang))
	}
	if code := p.raw(n); code != "" {
		out = append(out, p.gutter(highlight(code, lang, p.codeStyle))...)
	}
	return out
}

func (p page) gutter(lines []string) []string {
	bar := p.muted.Render("│") + " "
	return hang(bar, bar, lines)
}

// list renders the items of l. Each item's blocks are wrapped to the space
// left after its marker, and continuation lines are indented under the text.
func (p page) list(l *ast.List, width int) []string {
	var out []string
	num := l.Start
	for n := l.FirstChild(); n != nil; n = n.NextSibling() {
		item, ok := n.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		inner := max(width-len(marker), minWidth)
		var body []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			body = append(body, p.block(c, inner)...)
		}
		if len(body) == 0 {
			body = []string{""}
		}
		out = append(out, hang(marker, strings.Repeat(" ", len(marker)), body)...)
	}
	return out
}

// hang prefixes the first line with first and every other line with rest.
func hang(first, rest string, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if i == 0 {
			out[i] = first + l
		} else {
			out[i] = rest + l
		}
	}
	return out
}

// span renders the inline children of n as one styled string.
func (p page) span(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(p.inline(c))
	}
	return b.String()
}

func (p page) inline(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(p.src))
		if n.SoftLineBreak() {
			s += " "
		}
		if n.HardLineBreak() {
			s += "\n"
		}
		return s
	case *ast.String:
		return string(n.Value)
	case *ast.Emphasis:
		// ***x*** parses as nested emphasis, so levels stop at 2.
		if n.Level == 1 {
			return p.italic.Render(p.span(n))
		}
		return p.bold.Render(p.span(n))
	case *ast.CodeSpan:
		return p.code.Render(p.span(n))
	case *east.Strikethrough:
		return p.strike.Render(p.span(n))
	case *east.TaskCheckBox:
		if n.IsChecked {
			return "[x] "
		}
		return "[ ] "
	case *ast.Link:
		return p.reference(p.span(n), string(n.Destination))
	case *ast.Image:
		return p.reference(p.span(n), string(n.Destination))
	case *ast.AutoLink:
		return p.underline.Render(string(n.URL(p.src)))
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(p.src))
		}
		return b.String()
	default:
		return p.span(n)
	}
}

// reference shows a link or image label followed by its destination.
func (p page) reference(label, dest string) string {
	return p.underline.Render(label) + " " + p.muted.Render("("+dest+")")
}

// table lays out a GFM table with box borders. Tables wider than width are
// squeezed by lipgloss, which wraps cell contents.
func (p page) table(n *east.Table, width int) string {
	var headers []string
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, p.span(cell))
		}
		switch row.(type) {
		case *east.TableHeader:
			headers = cells
		case *east.TableRow:
			rows = append(rows, cells)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Inherit(p.bold)
			}
			if col < len(n.Alignments) && n.Alignments[col] == east.AlignRight {
				return s.Align(lipgloss.Right)
			}
			return s
		})
	rendered := t.Render()
	if lipgloss.Width(rendered) > width {
		rendered = t.Width(width).Render()
	}
	return rendered
}
