package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/model"
	"github.com/five82/folio/internal/state"
)

func newWallpapersCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wallpapers",
		Aliases: []string{"wp"},
		Short:   "Manage the wallpaper gallery",
	}
	cmd.AddCommand(newWallpapersListCmd(flags))
	cmd.AddCommand(newWallpapersAddCmd(flags))
	cmd.AddCommand(newWallpapersRmCmd(flags))
	cmd.AddCommand(newWallpapersExportCmd(flags))
	return cmd
}

func newWallpapersListCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List wallpapers in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(flags, func(env *app.Env) error {
				wps := env.Store.Snapshot().Wallpapers
				if flags.JSON {
					return writeJSON(cmd.OutOrStdout(), wallpaperViews(wps))
				}
				for _, wp := range wps {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", wp.ID, imageref.MediaType(wp.URL), imageref.Size(wp.URL))
				}
				return nil
			})
		},
	}
}

func newWallpapersAddCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Add image files as one batch; unreadable files are skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(flags, func(env *app.Env) error {
				added := env.Store.AddWallpapers(cmd.Context(), args)
				if err := checkSaved(env); err != nil {
					return err
				}
				if flags.JSON {
					if err := writeJSON(cmd.OutOrStdout(), wallpaperViews(added)); err != nil {
						return err
					}
				} else {
					for _, wp := range added {
						fmt.Fprintln(cmd.OutOrStdout(), wp.ID)
					}
				}
				if skipped := len(args) - len(added); skipped > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d of %d files (see log)\n", skipped, len(args))
				}
				if len(added) == 0 {
					return fmt.Errorf("no wallpapers added")
				}
				return nil
			})
		},
	}
}

func newWallpapersRmCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a wallpaper by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(flags, func(env *app.Env) error {
				if !env.Store.RemoveWallpaper(args[0]) {
					return fmt.Errorf("%w: %s", state.ErrNotFound, args[0])
				}
				return checkSaved(env)
			})
		},
	}
}

func newWallpapersExportCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> [dir]",
		Short: "Write a wallpaper's image to a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			} else if wd, err := os.Getwd(); err == nil {
				dir = wd
			}
			return withEnv(flags, func(env *app.Env) error {
				wp, ok := env.Store.Wallpaper(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", state.ErrNotFound, args[0])
				}
				path, err := imageref.Export(wp.URL, dir, "wallpaper-"+wp.ID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
}

func wallpaperViews(wps []model.Wallpaper) []map[string]any {
	out := make([]map[string]any, 0, len(wps))
	for _, wp := range wps {
		out = append(out, map[string]any{
			"id":        wp.ID,
			"mediaType": imageref.MediaType(wp.URL),
			"bytes":     imageref.Size(wp.URL),
		})
	}
	return out
}
