// Package logtail reads the tail of folio's log file.
//
// # Overview
//
// Read returns the last N lines of a file with one sequential pass and
// O(N) memory, using a ring buffer that wraps at N. Lines come back in
// chronological order. A missing file is not an error; folio may simply not
// have logged anything yet.
//
// Level and Message pick apart slog text records so the TUI log overlay and
// `folio logs` can color and shorten them:
//
//	time=2026-01-02T15:04:05Z level=WARN msg="skipping wallpaper" path=/tmp/a.txt
//
// Level returns "WARN" and Message returns "skipping wallpaper". Lines that
// are not slog records pass through Message untouched.
package logtail
