// Package config loads the gammaconsole TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/gammaconsole/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Example
//
//	full_timestamp = false
//	caller_width = 30
//	font_family = "monospace"
//	escape_markup = false
//	save_dir = "~/logs"
//	diagnostic_log = "~/.local/state/gammaconsole/diagnostics.log"
//	backfill = 200
//	poll_ms = 500
//	follow = ["/var/log/app.log"]
//
//	[palette]
//	background = "#ffffff"
//	text = "#000000"
//	border = "#acacac"
//	debug = "#e1e1e1"
//	info = "#d7ffd7"
//	warning = "#ffffd7"
//	error = "#ffd7d7"
//
// Paths starting with ~ are expanded against the user's home directory. Palette
// entries are "#rrggbb" hex colors; omitted entries keep the default.
package config
