package table

import (
	"strings"

	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/logging"
	"go.uber.org/zap"
)

// Host receives the widget's output. Implementations must not block; reports
// are fire-and-forget notifications.
type Host interface {
	// SetValue reports the full committed grid as the widget's current value.
	SetValue(g grid.Grid)
	// SetFrameHeight reports the widget's rendered height.
	SetFrameHeight(height int)
}

// MeasureFunc computes the rendered height of a view. Its unit is defined by
// the UI binding (pixels for the browser page, lines for the terminal).
type MeasureFunc func(v View) int

// Options are the mount arguments of a widget instance.
type Options struct {
	// Grid is the initial grid. A nil grid is replaced by grid.Default().
	Grid grid.Grid
	// EditableColumns lists header values whose columns accept edits.
	EditableColumns []string
	// Disabled makes every cell read-only and Save inert.
	Disabled bool
	// Measure computes the frame height. Defaults to DefaultMeasure.
	Measure MeasureFunc
}

// Controller owns the committed grid and the pending-edit overlay.
//
// A Controller is not safe for concurrent use. UI bindings deliver all events
// from a single goroutine.
type Controller struct {
	host      Host
	committed grid.Grid
	pending   grid.Edits
	header    []string
	editable  map[string]struct{}
	disabled  bool
	measure   MeasureFunc
}

// New initializes a widget instance and reports the initial value and frame
// height to host.
func New(host Host, opts Options) *Controller {
	g := grid.Clone(opts.Grid)
	if g == nil {
		g = grid.Default()
	}

	editable := make(map[string]struct{}, len(opts.EditableColumns))
	for _, col := range opts.EditableColumns {
		editable[col] = struct{}{}
	}

	measure := opts.Measure
	if measure == nil {
		measure = DefaultMeasure
	}

	c := &Controller{
		host:      host,
		committed: g,
		pending:   make(grid.Edits),
		header:    append([]string(nil), grid.Header(g)...),
		editable:  editable,
		disabled:  opts.Disabled,
		measure:   measure,
	}

	logging.Debug("Table mounted",
		zap.Int("rows", len(g)),
		zap.Int("columns", g.Columns()),
		zap.Strings("editable_columns", opts.EditableColumns),
		zap.Bool("disabled", opts.Disabled),
	)

	c.report()
	return c
}

// RecordEdit stores value as the pending edit for (row, col), replacing any
// earlier edit of that cell. The coordinate is not validated.
func (c *Controller) RecordEdit(row, col int, value string) {
	c.pending[grid.Coord{Row: row, Col: col}] = value
	logging.LogEdit(row, col, len(value))
}

// Commit merges the pending edits into the committed grid, clears them, and
// reports the new value and frame height. It returns false without doing
// anything when the widget is disabled.
func (c *Controller) Commit() bool {
	if c.disabled {
		logging.Debug("Commit ignored, table is disabled")
		return false
	}

	applied := len(c.pending)
	c.committed = grid.Overlay(c.committed, c.pending)
	c.pending = make(grid.Edits)

	logging.LogCommit(applied, len(c.committed))
	c.report()
	return true
}

// Discard drops all pending edits without reporting anything.
func (c *Controller) Discard() {
	c.pending = make(grid.Edits)
}

// report performs ReportValue followed by ReportFrameHeight.
func (c *Controller) report() {
	if c.host == nil {
		return
	}
	c.host.SetValue(grid.Clone(c.committed))
	c.host.SetFrameHeight(c.measure(c.View()))
}

// Editable reports whether the cell at (row, col) accepts edits: the widget
// is enabled, the row is not the header, and the column's header value is in
// the editable set.
func (c *Controller) Editable(row, col int) bool {
	if c.disabled || row == 0 {
		return false
	}
	if col < 0 || col >= len(c.header) {
		return false
	}
	_, ok := c.editable[c.header[col]]
	return ok
}

// Committed returns a copy of the committed grid.
func (c *Controller) Committed() grid.Grid {
	return grid.Clone(c.committed)
}

// Pending returns a copy of the pending edits.
func (c *Controller) Pending() grid.Edits {
	out := make(grid.Edits, len(c.pending))
	for k, v := range c.pending {
		out[k] = v
	}
	return out
}

// Dirty reports whether there are unsaved edits.
func (c *Controller) Dirty() bool {
	return len(c.pending) > 0
}

// Disabled reports whether the widget is read-only.
func (c *Controller) Disabled() bool {
	return c.disabled
}

// Resolved returns the committed grid overlaid by the pending edits.
func (c *Controller) Resolved() grid.Grid {
	return grid.Overlay(c.committed, c.pending)
}

// DefaultMeasure counts rendered text lines: each row is as tall as its
// tallest cell.
func DefaultMeasure(v View) int {
	height := 0
	for _, row := range v.Rows {
		tallest := 1
		for _, cell := range row.Cells {
			if n := strings.Count(cell.Value, "\n") + 1; n > tallest {
				tallest = n
			}
		}
		height += tallest
	}
	return height
}
