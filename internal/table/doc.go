// Package table implements the editable-table controller.
//
// A Controller holds two pieces of state: the committed grid and a map of
// pending per-cell edits. Renderers never read either directly; they call
// View, which overlays the pending edits on the committed grid and applies
// the editability policy:
//
//	editable(row, col) = !disabled && row != 0 && header[col] in editable columns
//
// Only Commit changes the committed grid. Every commit, and the initial
// mount, reports the full grid and the frame height to the injected Host.
//
// # Usage
//
//	ctrl := table.New(h, table.Options{
//	    Grid:            grid.Grid{{"a", "b"}, {"1", "2"}},
//	    EditableColumns: []string{"b"},
//	})
//	ctrl.RecordEdit(1, 1, "X")
//	ctrl.Commit() // h receives [["a","b"],["1","X"]]
package table
