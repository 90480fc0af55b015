// Package agent exposes a single table widget to AI agents as Model Context
// Protocol tools.
//
// Tools:
//
//	get_table      saved value, displayed grid, pending edits, editable columns
//	edit_cell      record a pending edit (row, col, value)
//	save_table     commit pending edits; fails on a disabled table
//	discard_edits  drop pending edits
//
// Edits to the header row, to columns outside the editable set, or to cells
// missing from a short row are rejected as tool errors rather than recorded.
package agent
