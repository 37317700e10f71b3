package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Encoder   imageref.Encoder // nil uses imageref.FileEncoder{}
	LogPath   string           // empty disables the log overlay
	ExportDir string           // empty uses the working directory
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	encoder   imageref.Encoder
	logPath   string
	exportDir string
	tick      time.Duration
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot

	// Gallery state
	selected int
	adding   int // batches in flight

	// Overlays
	showHelp    bool
	showLogs    bool
	logViewport viewport.Model
	logLines    []string
	settings    *settingsForm
	modal       Modal

	// Footer status
	status    string
	statusErr bool
	statusSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	enc := opts.Encoder
	if enc == nil {
		enc = imageref.FileEncoder{}
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		if wd, err := os.Getwd(); err == nil {
			exportDir = wd
		} else {
			exportDir = "."
		}
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		encoder:   enc,
		logPath:   opts.LogPath,
		exportDir: exportDir,
		tick:      tick,
		keys:      DefaultKeyMap(),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	m.theme = ThemeFor(m.snapshot.DarkMode)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(msg.Width, m.logViewportHeight())
		}
		m.ready = true
		m.logViewport.Width = msg.Width
		m.logViewport.Height = m.logViewportHeight()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.tick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if m.showLogs {
			cmds = append(cmds, readLogsCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case statusMsg:
		return m, m.setStatus(msg.text, msg.isErr)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case addStartedMsg:
		m.adding++
		n := int(msg)
		return m, m.setStatus(fmt.Sprintf("Adding %d file%s…", n, ternary(n == 1, "", "s")), false)

	case wallpapersAddedMsg:
		m.adding = max(m.adding-1, 0)
		m.refresh()
		if n := len(msg.added); n > 0 {
			m.selected = len(m.snapshot.Wallpapers) - 1
		}
		skipped := msg.requested - len(msg.added)
		text := fmt.Sprintf("Added %d wallpaper%s", len(msg.added), ternary(len(msg.added) == 1, "", "s"))
		if skipped > 0 {
			text += fmt.Sprintf(", skipped %d unreadable", skipped)
		}
		return m, m.setStatus(text, skipped > 0 && len(msg.added) == 0)

	case pictureEncodedMsg:
		return m.handlePicture(msg)

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.setStatus("Export failed: "+msg.err.Error(), true)
		}
		return m, m.setStatus("Exported to "+msg.path, false)

	case logsMsg:
		if msg.err != nil {
			return m, m.setStatus("Reading log failed: "+msg.err.Error(), true)
		}
		m.logLines = msg.lines
		atBottom := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
		m.logViewport.SetContent(m.renderLogLines())
		if atBottom {
			m.logViewport.GotoBottom()
		}
		return m, nil
	}

	// Anything else (cursor blinks, directory listings) belongs to the
	// active overlay.
	return m.forwardToOverlay(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.settings != nil {
		return m.settings.View(m.theme, m.width, m.height)
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

func (m Model) forwardToOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var closed bool
	switch {
	case m.settings != nil:
		var next Modal
		next, cmd, closed = m.settings.Update(msg, m.keys)
		m.settings = next.(*settingsForm)
		if closed {
			m.settings = nil
			m.refresh()
		}
	case m.modal != nil:
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.settings != nil || m.modal != nil {
		return m.forwardToOverlay(msg)
	}

	if m.showLogs {
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs):
			m.showLogs = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		if m.store == nil {
			return m, nil
		}
		m.store.ToggleDisplayMode()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		return m.toggleSettings()

	case key.Matches(msg, m.keys.Logs):
		if m.logPath == "" {
			return m, m.setStatus("No log file for this session", true)
		}
		m.showLogs = true
		return m, readLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.Add):
		if m.store == nil {
			return m, nil
		}
		m.modal = newPromptModal(
			"Add wallpapers",
			"Space-separated paths; globs like ~/Pictures/*.jpg are expanded",
			"",
			m.startAdd,
		)
		return m, nil

	case key.Matches(msg, m.keys.Browse):
		if m.store == nil {
			return m, nil
		}
		picker, cmd := newPickerModal(m.theme, "", m.height, func(path string) tea.Cmd {
			return addBatchCmd(m.ctx, m.store, []string{path})
		})
		m.modal = picker
		return m, cmd

	case key.Matches(msg, m.keys.Remove):
		wp, ok := m.selectedWallpaper()
		if !ok {
			return m, nil
		}
		if m.store.RemoveWallpaper(wp.ID) {
			m.refresh()
			return m, m.setStatus("Removed wallpaper "+wp.ID, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Export):
		wp, ok := m.selectedWallpaper()
		if !ok {
			return m, nil
		}
		m.modal = newPromptModal("Export wallpaper "+wp.ID, "Directory to write the image into", m.exportDir, func(dir string) tea.Cmd {
			return exportCmd(wp, expandHome(dir))
		})
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.snapshot.Wallpapers)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(m.snapshot.Wallpapers)-1, 0)
	}
	return m, nil
}

// startAdd kicks off one wallpaper batch. It is called from prompt and
// picker callbacks, so it only builds the command.
func (m Model) startAdd(input string) tea.Cmd {
	paths := parsePaths(input)
	if len(paths) == 0 {
		return nil
	}
	return addBatchCmd(m.ctx, m.store, paths)
}

func (m Model) toggleSettings() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	if m.store.ToggleSettings() {
		snap := m.store.Snapshot()
		m.applySnapshot(snap)
		m.settings = newSettingsForm(m.ctx, m.store, m.encoder, snap)
		return m, nil
	}
	m.settings = nil
	m.refresh()
	return m, nil
}

func (m Model) handlePicture(msg pictureEncodedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.settings != nil {
			m.settings.applyPicture(msg)
		}
		return m, m.setStatus("Picture not loaded: "+msg.err.Error(), true)
	}
	applied, err := m.store.SetDraftPictureFor(msg.gen, msg.ref)
	if err != nil {
		msg.err = err
		if m.settings != nil {
			m.settings.applyPicture(msg)
		}
		return m, m.setStatus("Picture not loaded: "+err.Error(), true)
	}
	if !applied {
		return m, m.setStatus("Picture discarded: settings were reopened", true)
	}
	if m.settings != nil {
		m.settings.applyPicture(msg)
	}
	m.refresh()
	return m, m.setStatus("Picture loaded, ctrl+s to save", false)
}

func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.applySnapshot(m.store.Snapshot())
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.theme = ThemeFor(snap.DarkMode)
	if m.selected >= len(snap.Wallpapers) {
		m.selected = len(snap.Wallpapers) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = strings.TrimSpace(text)
	m.statusErr = isErr
	return clearStatusCmd(m.statusSeq)
}

func (m Model) logViewportHeight() int {
	return max(m.height-3, 1)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
