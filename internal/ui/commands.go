package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/logtail"
	"github.com/five82/folio/internal/model"
	"github.com/five82/folio/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct {
	seq int
}

type addStartedMsg int

type wallpapersAddedMsg struct {
	added     []model.Wallpaper
	requested int
}

type pictureEncodedMsg struct {
	gen uint64
	ref string
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type logsMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func setStatusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// addBatchCmd announces a batch and then runs it, so the start message is
// always seen before the result.
func addBatchCmd(ctx context.Context, store *state.Store, paths []string) tea.Cmd {
	n := len(paths)
	return tea.Sequence(
		func() tea.Msg { return addStartedMsg(n) },
		addWallpapersCmd(ctx, store, paths),
	)
}

func addWallpapersCmd(ctx context.Context, store *state.Store, paths []string) tea.Cmd {
	return func() tea.Msg {
		added := store.AddWallpapers(ctx, paths)
		return wallpapersAddedMsg{added: added, requested: len(paths)}
	}
}

func encodePictureCmd(ctx context.Context, enc imageref.Encoder, gen uint64, path string) tea.Cmd {
	return func() tea.Msg {
		ref, err := enc.Encode(ctx, path)
		return pictureEncodedMsg{gen: gen, ref: ref, err: err}
	}
}

func exportCmd(wp model.Wallpaper, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := imageref.Export(wp.URL, dir, "wallpaper-"+wp.ID)
		return exportDoneMsg{path: path, err: err}
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logsMsg{lines: lines, err: err}
	}
}

// parsePaths splits prompt input on whitespace and expands ~ and glob
// patterns. A pattern that matches nothing is kept as typed so the store
// reports it as unreadable.
func parsePaths(input string) []string {
	var paths []string
	for _, field := range strings.Fields(input) {
		field = expandHome(field)
		matches, err := filepath.Glob(field)
		if err != nil || len(matches) == 0 {
			paths = append(paths, field)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
