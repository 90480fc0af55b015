package grid

import "fmt"

// Grid is an ordered sequence of rows of string cells. Row 0 is the header.
// Rows are expected to share a length but jagged grids are accepted as-is.
type Grid [][]string

// Coord addresses a single cell.
type Coord struct {
	Row int
	Col int
}

// String returns the "row-col" form used as the edit key by the browser page.
func (c Coord) String() string {
	return fmt.Sprintf("%d-%d", c.Row, c.Col)
}

// Edits maps a cell coordinate to its unsaved value.
type Edits map[Coord]string

// Default returns the 2x2 grid of empty strings used when no grid is supplied.
func Default() Grid {
	return Grid{
		{"", ""},
		{"", ""},
	}
}

// Clone returns a deep copy of g. A nil grid clones to nil.
func Clone(g Grid) Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Header returns row 0, or nil for an empty grid.
func Header(g Grid) []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// Overlay returns a new grid holding g with every edit applied.
// Edits addressing cells that g does not contain are ignored.
func Overlay(g Grid, edits Edits) Grid {
	out := Clone(g)
	for c, v := range edits {
		if c.Row < 0 || c.Row >= len(out) {
			continue
		}
		if c.Col < 0 || c.Col >= len(out[c.Row]) {
			continue
		}
		out[c.Row][c.Col] = v
	}
	return out
}

// Cell returns the value at c and whether the grid contains that cell.
func (g Grid) Cell(c Coord) (string, bool) {
	if c.Row < 0 || c.Row >= len(g) {
		return "", false
	}
	if c.Col < 0 || c.Col >= len(g[c.Row]) {
		return "", false
	}
	return g[c.Row][c.Col], true
}

// Columns returns the length of the longest row.
func (g Grid) Columns() int {
	n := 0
	for _, row := range g {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Equal reports whether a and b hold the same rows and cells.
func Equal(a, b Grid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
