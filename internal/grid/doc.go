// Package grid holds the table data model: a grid of string cells, the
// coordinates that address them, and the pending-edit overlay.
//
// Row 0 of a grid is the header row. Grids are treated as immutable values;
// Overlay and Clone always return fresh storage so callers can hand grids to
// a host without exposing internal state.
package grid
