package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/folio/internal/app"
)

// Flags holds the persistent flags shared by every command.
type Flags struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Ephemeral  bool
	JSON       bool
}

func (f *Flags) options() app.Options {
	return app.Options{
		ConfigPath: f.ConfigPath,
		DataDir:    f.DataDir,
		Backend:    f.Backend,
		Ephemeral:  f.Ephemeral,
	}
}

// NewRootCmd builds the folio command tree.
func NewRootCmd() *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Profile card and wallpaper gallery for the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  folio

  # Scriptable commands
  folio profile set username @ada
  folio wallpapers add ~/Pictures/*.jpg
  folio mode toggle
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand and a terminal => interactive TUI.
			if isTerminal(cmd.OutOrStdout()) {
				return app.Run(cmd.Context(), flags.options())
			}
			return runSummary(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", envOr("FOLIO_CONFIG", ""), "Config file (default ~/.config/folio/config.toml)")
	cmd.PersistentFlags().StringVar(&flags.DataDir, "data-dir", envOr("FOLIO_DATA_DIR", ""), "Directory holding folio's stored state")
	cmd.PersistentFlags().StringVar(&flags.Backend, "backend", envOr("FOLIO_BACKEND", ""), "Storage backend (file|sqlite|memory)")
	cmd.PersistentFlags().BoolVar(&flags.Ephemeral, "ephemeral", false, "Keep state in memory only; nothing is written to disk")
	cmd.PersistentFlags().BoolVar(&flags.JSON, "json", false, "Print machine-readable JSON")

	cmd.AddCommand(newProfileCmd(flags))
	cmd.AddCommand(newModeCmd(flags))
	cmd.AddCommand(newWallpapersCmd(flags))
	cmd.AddCommand(newLogsCmd(flags))

	return cmd
}

// withEnv opens a session for the duration of fn.
func withEnv(flags *Flags, fn func(env *app.Env) error) error {
	env, err := app.Open(flags.options())
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

// checkSaved turns a failed storage write during a command into an error so
// scripts notice it.
func checkSaved(env *app.Env) error {
	if err := env.Store.Snapshot().LastPersistError; err != nil {
		return fmt.Errorf("change applied but not saved: %w", err)
	}
	return nil
}

func runSummary(cmd *cobra.Command, flags *Flags) error {
	return withEnv(flags, func(env *app.Env) error {
		snap := env.Store.Snapshot()
		if flags.JSON {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"darkMode":   snap.DarkMode,
				"profile":    profileView(snap.Profile),
				"wallpapers": len(snap.Wallpapers),
			})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, snap.Profile.Summary())
		fmt.Fprintln(out, snap.Profile.Location)
		fmt.Fprintln(out, snap.Profile.About)
		fmt.Fprintf(out, "mode: %s\n", modeName(snap.DarkMode))
		fmt.Fprintf(out, "wallpapers: %d\n", len(snap.Wallpapers))
		return nil
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
