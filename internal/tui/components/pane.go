package components

import (
	"strings"

	"kamalx/internal/classify"
	"kamalx/internal/tui/design"

	"github.com/mattn/go-runewidth"
)

// cell is one terminal column. Wide runes occupy their own cell followed by a
// continuation cell with r == 0.
type cell struct {
	r     rune
	style classify.Style
}

var blank = cell{r: ' '}

const tabWidth = 8

// ScrollPane is an in-memory terminal window. Writes address the visible rows;
// rows scrolled off the top are kept as scrollback up to the history limit.
//
// Rows written before a resize keep their width and are clipped when
// rendered.
type ScrollPane struct {
	rows, cols int
	history    int

	lines    [][]cell
	row, col int

	version uint64
}

// NewScrollPane creates a pane of rows×cols that retains up to history lines
// in total. A history below rows keeps exactly the visible rows.
func NewScrollPane(rows, cols, history int) *ScrollPane {
	p := &ScrollPane{history: history}
	p.Resize(rows, cols)
	return p
}

// Size returns the visible geometry.
func (p *ScrollPane) Size() (int, int) {
	return p.rows, p.cols
}

// Resize changes the visible geometry. Existing lines are kept; the cursor is
// clamped into the new window.
func (p *ScrollPane) Resize(rows, cols int) {
	p.rows = max(rows, 0)
	p.cols = max(cols, 0)
	for len(p.lines) < p.rows {
		p.lines = append([][]cell{nil}, p.lines...)
	}
	p.trim()
	p.row = min(p.row, max(p.rows-1, 0))
	p.col = min(p.col, p.cols)
}

// Clear blanks the visible rows and homes the cursor. Scrollback is kept.
func (p *ScrollPane) Clear() {
	for i := p.top(); i < len(p.lines); i++ {
		p.lines[i] = nil
	}
	p.row, p.col = 0, 0
}

// SetCursor moves the write position. Positions outside the pane are clamped.
func (p *ScrollPane) SetCursor(row, col int) {
	p.row = min(max(row, 0), max(p.rows-1, 0))
	p.col = max(col, 0)
}

// Write draws text at the cursor and advances it. Text past the right edge is
// dropped, as is any write into a pane without rows.
func (p *ScrollPane) Write(text string, style classify.Style) {
	if p.rows == 0 {
		return
	}
	idx := p.top() + p.row
	line := p.lines[idx]

	for _, r := range text {
		if r == '\n' || r == '\r' {
			continue
		}
		if r == '\t' {
			stop := min((p.col/tabWidth+1)*tabWidth, p.cols)
			for len(line) < stop {
				line = append(line, blank)
			}
			p.col = stop
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if p.col+w > p.cols {
			break
		}
		for len(line) < p.col+w {
			line = append(line, blank)
		}
		if p.col > 0 && line[p.col].r == 0 {
			line[p.col-1] = blank
		}
		line[p.col] = cell{r: r, style: style}
		if w == 2 {
			line[p.col+1] = cell{style: style}
		}
		p.col += w
	}

	p.lines[idx] = line
}

// ScrollUp moves every row up by one and opens a blank bottom row. The oldest
// line is evicted once the history limit is reached.
func (p *ScrollPane) ScrollUp() {
	if p.rows == 0 {
		return
	}
	p.lines = append(p.lines, nil)
	p.trim()
}

// Refresh publishes pending writes.
func (p *ScrollPane) Refresh() {
	p.version++
}

// Version increases on every Refresh.
func (p *ScrollPane) Version() uint64 {
	return p.version
}

// Len returns the number of retained lines, scrollback included.
func (p *ScrollPane) Len() int {
	return len(p.lines)
}

// View renders the visible rows, each padded to the pane width.
func (p *ScrollPane) View() string {
	return p.render(p.top(), len(p.lines))
}

// RenderAll renders every retained line, oldest first.
func (p *ScrollPane) RenderAll() string {
	return p.render(0, len(p.lines))
}

// Text returns the retained lines as plain text without leading blank lines
// or trailing spaces.
func (p *ScrollPane) Text() string {
	out := make([]string, 0, len(p.lines))
	for _, line := range p.lines {
		var b strings.Builder
		for _, c := range line {
			if c.r != 0 {
				b.WriteRune(c.r)
			}
		}
		s := strings.TrimRight(b.String(), " ")
		if s == "" && len(out) == 0 {
			continue
		}
		out = append(out, s)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

func (p *ScrollPane) top() int {
	return len(p.lines) - p.rows
}

func (p *ScrollPane) trim() {
	limit := max(p.rows, p.history)
	if over := len(p.lines) - limit; over > 0 {
		p.lines = append([][]cell(nil), p.lines[over:]...)
	}
}

func (p *ScrollPane) render(from, to int) string {
	out := make([]string, 0, to-from)
	for _, line := range p.lines[from:to] {
		out = append(out, renderLine(line, p.cols))
	}
	return strings.Join(out, "\n")
}

// renderLine draws line clipped and padded to width columns, grouping
// adjacent cells that share a style into one styled run.
func renderLine(line []cell, width int) string {
	var b strings.Builder
	used := 0

	var run strings.Builder
	var runStyle classify.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runStyle == (classify.Style{}) {
			b.WriteString(run.String())
		} else {
			b.WriteString(design.StyleFor(runStyle).Render(run.String()))
		}
		run.Reset()
	}

	for i := 0; i < len(line) && used < width; i++ {
		c := line[i]
		if c.r == 0 {
			// Continuation of a wide rune that was overwritten.
			if i == 0 || runewidth.RuneWidth(line[i-1].r) != 2 {
				c = blank
			} else {
				continue
			}
		}
		w := runewidth.RuneWidth(c.r)
		if used+w > width {
			break
		}
		if c.style != runStyle {
			flush()
			runStyle = c.style
		}
		run.WriteRune(c.r)
		used += w
	}
	flush()

	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}
