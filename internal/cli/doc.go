// Package cli defines the folio command tree.
//
// Running folio with no subcommand starts the TUI when stdout is a terminal
// and prints a short summary otherwise. The subcommands drive the same state
// store as the TUI, so every change they make is saved the same way:
//
//	folio profile show|set <field> <value>|picture <file>
//	folio mode show|toggle
//	folio wallpapers list|add <file>...|rm <id>|export <id> [dir]
//	folio logs [-n N]
//
// Persistent flags --config, --data-dir, --backend and --ephemeral override
// the config file. A change that could not be written to storage makes the
// command fail even though it took effect for the rest of the run.
package cli
