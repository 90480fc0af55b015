// Package tui is the terminal binding of the editable table.
//
// The table is drawn with lipgloss. Every column except the last is wrapped
// to a fixed width; the last column sizes to its content. The cursor cell
// opens a bubbles textarea whose height is reset to its wrapped line count on
// focus and after every keystroke, so the editor grows instead of scrolling.
// Each change is recorded on the controller as a pending edit; ctrl+s commits.
//
// # Keys
//
//	↑↓←→ / hjkl   move
//	enter         edit the cursor cell (editable cells only)
//	esc           stop editing, keep the pending edit
//	ctrl+s        save
//	ctrl+r        revert pending edits
//	q             quit (press twice with unsaved changes)
//
// Measure reports the widget height in terminal lines and is meant to be
// passed as the controller's table.MeasureFunc.
package tui
