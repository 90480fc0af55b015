// Package render draws a table.View as HTML.
//
// Read-only cells become pre-wrapped paragraphs so embedded line breaks are
// kept. Editable cells become single-row textareas; the page script regrows
// each one to its scrollHeight on input and on focus, so inputs never scroll
// vertically. The last cell of each row sizes to its content.
//
// Page produces a standalone document for the browser binding in
// internal/server. Cell, Row and Table are exposed separately so the server
// can push re-rendered fragments over the websocket.
package render
