package table

import "github.com/muurk/edtable/internal/grid"

// Cell is one overlay-resolved cell as a renderer sees it.
type Cell struct {
	Coord    grid.Coord
	Value    string
	Editable bool
	// Last marks the final cell of its row, which sizes to its content.
	Last bool
}

// Row is one overlay-resolved row.
type Row struct {
	Index int
	Cells []Cell
}

// View is the render input: the committed grid overlaid by pending edits,
// with the editability policy applied to every cell.
type View struct {
	Rows     []Row
	Disabled bool
	Dirty    bool
}

// View resolves the current state into a renderable snapshot.
func (c *Controller) View() View {
	resolved := c.Resolved()
	v := View{
		Rows:     make([]Row, len(resolved)),
		Disabled: c.disabled,
		Dirty:    c.Dirty(),
	}
	for r, values := range resolved {
		row := Row{Index: r, Cells: make([]Cell, len(values))}
		for col, value := range values {
			row.Cells[col] = Cell{
				Coord:    grid.Coord{Row: r, Col: col},
				Value:    value,
				Editable: c.Editable(r, col),
				Last:     col == len(values)-1,
			}
		}
		v.Rows[r] = row
	}
	return v
}
