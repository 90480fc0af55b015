package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/render"
	"github.com/muurk/edtable/internal/table"
)

// chromeLines is the status line plus the help line below the table.
const chromeLines = 2

// focus describes the cursor cell and, while editing, the editor's view
// that replaces it.
type focus struct {
	Coord  grid.Coord
	Show   bool
	Editor string
}

// renderCell draws one cell. Read-only cells are wrapped text that keeps
// embedded line breaks; every column but the last is wrapped to ColumnWidth.
func renderCell(c table.Cell, f focus, s Styles) string {
	if f.Editor != "" && f.Coord == c.Coord {
		return f.Editor
	}

	style := s.Text
	switch {
	case c.Coord.Row == 0:
		style = s.Header
	case c.Editable:
		style = s.Editable
	}
	if f.Show && f.Coord == c.Coord {
		style = s.Cursor
	}
	if !c.Last {
		style = style.Width(ColumnWidth)
	}
	return style.Render(c.Value)
}

// renderRow applies renderCell across a row.
func renderRow(r table.Row, f focus, s Styles) []string {
	cells := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		cells[i] = renderCell(c, f, s)
	}
	return cells
}

// renderTable draws the whole view with borders between rows.
func renderTable(v table.View, f focus, s Styles) string {
	if len(v.Rows) == 0 {
		return ""
	}
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		BorderRow(true)
	for _, r := range v.Rows {
		t.Row(renderRow(r, f, s)...)
	}
	return t.Render()
}

// Measure is the terminal binding's table.MeasureFunc: the number of
// terminal lines the widget occupies.
func Measure(v table.View) int {
	plain := NewStyles(render.Theme{}, true)
	return lipgloss.Height(renderTable(v, focus{}, plain)) + chromeLines
}

// visualLines counts the rows value occupies in an editor of the given
// width, including the row the cursor wraps onto when a line is full.
func visualLines(value string, width int) int {
	if width < 1 {
		width = 1
	}
	n := 0
	for _, line := range strings.Split(value, "\n") {
		n += wrappedRows(line, width)
	}
	return n
}

// wrappedRows counts the soft-wrapped rows of one line the way the textarea
// wraps it: whole words move to the next row, and a word wider than the row
// is split. A full last row adds one for the cursor.
func wrappedRows(line string, width int) int {
	rows := 1
	cur, word, spaces := 0, 0, 0
	for _, r := range line {
		rw := lipgloss.Width(string(r))
		if unicode.IsSpace(r) {
			spaces++
		} else {
			word += rw
		}

		if spaces > 0 {
			if cur+word+spaces > width {
				rows++
				cur = 0
			}
			cur += word + spaces
			word, spaces = 0, 0
			continue
		}
		if word+rw > width {
			if cur > 0 {
				rows++
				cur = 0
			}
			cur += word
			word = 0
		}
	}
	if cur+word+spaces >= width {
		rows++
	}
	return rows
}
