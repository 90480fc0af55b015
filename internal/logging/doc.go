// Package logging provides structured logging for edtable.
//
// This package wraps a zap logger behind package-level functions so every
// layer (controller, server, terminal UI) logs the same way without passing a
// logger around.
//
// # Log Levels
//
//   - Debug: cell edits, websocket payloads, ignored commits
//   - Info: mounts, commits, connections, server lifecycle
//   - Warn: malformed messages, dropped notifications
//   - Error: listener and upgrade failures
//
// # Silent Mode
//
// When neither a level nor EDTABLE_LOG_LEVEL is set, the logger is a no-op.
// This keeps the terminal UI and the JSON value stream on stdout clean. Logs
// always go to stderr.
//
//	logging.Info("Table committed",
//	    zap.Int("edits_applied", 2),
//	    zap.Int("rows", 10),
//	)
package logging
