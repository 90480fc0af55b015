// Package config loads edtable's two kinds of input files.
//
// # Mount Arguments
//
// An args file describes one widget instance, the same arguments a host
// passes when it embeds the table:
//
//	data:
//	  - [name, notes]
//	  - [alice, "likes tea"]
//	editable_columns: [notes]
//	disabled: false
//	theme:
//	  primary_color: "#ff4b4b"
//
// JSON is accepted too. A .csv file is read as a bare grid whose first record
// is the header, with every column editable. When editable_columns is
// omitted or empty, every header column is editable.
//
// # Preferences
//
// The preferences file lives in the platform config directory:
//   - Linux: $XDG_CONFIG_HOME/edtable/config.yaml or ~/.config/edtable/config.yaml
//   - macOS: ~/.config/edtable/config.yaml
//   - Windows: %LOCALAPPDATA%\edtable\config.yaml
//
// It stores serve defaults (host, port, mDNS advertisement) and a fallback
// theme. Writes are atomic (temp file + rename).
package config
