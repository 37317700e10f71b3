// Package ui provides folio's terminal user interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model renders a state.Store snapshot and
// turns key presses into store operations; it holds no profile or gallery
// data of its own beyond the last snapshot.
//
// # Package Structure
//
//   - model.go: Model, Options, Init/Update/View and key dispatch
//   - view.go: header, profile card, gallery list, footer and log overlay
//   - settings.go: the settings form that edits the draft profile
//   - modal.go: Modal interface, the text prompt and the file picker
//   - commands.go: messages and tea.Cmds for async work
//   - theme.go: light and dark themes, chosen by the persisted display mode
//   - markdown.go: glamour rendering of the about text
//   - keys.go, help.go: key bindings and the help overlay
//
// # Async Work
//
// Wallpaper batches and picture encodes run as tea.Cmds so the view stays
// responsive. A picture encode carries the draft generation it started
// under; if the settings panel was reopened before it finishes, the result
// is dropped instead of landing in the new draft.
//
// # Key Bindings
//
//   - s: Open or close settings (the ⚙ in the footer)
//   - tab/shift+tab: Move between settings fields
//   - enter on Picture: Load the image at the typed path
//   - ctrl+s: Save the draft as the profile
//   - esc: Close an overlay, discarding settings edits
//   - m: Toggle dark mode
//   - a: Add wallpapers by path or glob
//   - A: Browse for one wallpaper
//   - x or Delete: Remove the selected wallpaper
//   - o: Export the selected wallpaper to a directory
//   - j/k, g/G: Move the selection
//   - L: Log overlay
//   - h/?: Help
//   - e or Ctrl+C: Exit
package ui
