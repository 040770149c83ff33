package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Table is a simple column-aligned formatter for command output.
type Table struct {
	headers  []string
	rows     [][]string
	padding  int
	maxWidth int // total render width; 0 means unbounded
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
	}
}

// SetMaxWidth caps the rendered width of the whole table. When the natural
// layout exceeds the cap, the widest columns are narrowed and their cells
// wrapped onto continuation lines.
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// AddRow appends a row, padded or truncated to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats the table as a string ending in a newline.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := t.columnWidths()

	// Wrap cells in columns that ended up narrower than their content.
	wrapped := make([][][]string, len(t.rows))
	for i, row := range t.rows {
		wrapped[i] = make([][]string, len(row))
		for j, cell := range row {
			wrapped[i][j] = wrapText(cell, widths[j])
		}
	}

	gap := strings.Repeat(" ", t.padding)
	parts := make([]string, len(t.headers))
	var b strings.Builder

	for i, h := range t.headers {
		parts[i] = padRight(h, widths[i])
	}
	b.WriteString(strings.Join(parts, gap))
	b.WriteString("\n")

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(parts, gap))
	b.WriteString("\n")

	for _, row := range wrapped {
		lines := 1
		for _, cell := range row {
			if len(cell) > lines {
				lines = len(cell)
			}
		}
		for line := 0; line < lines; line++ {
			for j := range t.headers {
				text := ""
				if line < len(row[j]) {
					text = row[j][line]
				}
				parts[j] = padRight(text, widths[j])
			}
			b.WriteString(strings.Join(parts, gap))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// columnWidths computes the natural width of each column, then narrows the
// widest columns until the table fits maxWidth. A column never shrinks below
// its header width.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if t.maxWidth <= 0 {
		return widths
	}

	total := t.padding * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	for total > t.maxWidth {
		widest := -1
		for i, w := range widths {
			if w > len(t.headers[i]) && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		widths[widest]--
		total--
	}
	return widths
}

// terminalWidth reports the width of the terminal attached to stdout, if any.
func terminalWidth() (int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// padRight pads a string with spaces on the right to reach the desired width.
// Strings already at or past the width are returned unchanged.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText breaks text into lines no longer than width, preferring word
// boundaries and hard-splitting words that exceed the width on their own.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	line := ""
	for _, word := range words {
		for len(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
