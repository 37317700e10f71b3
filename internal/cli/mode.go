package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
)

func newModeCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Show or toggle dark mode",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current display mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(flags, func(env *app.Env) error {
				return printMode(cmd, flags, env.Store.Snapshot().DarkMode)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark and save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(flags, func(env *app.Env) error {
				dark := env.Store.ToggleDisplayMode()
				if err := checkSaved(env); err != nil {
					return err
				}
				return printMode(cmd, flags, dark)
			})
		},
	})
	return cmd
}

func printMode(cmd *cobra.Command, flags *Flags, dark bool) error {
	if flags.JSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"darkMode": dark})
	}
	fmt.Fprintln(cmd.OutOrStdout(), modeName(dark))
	return nil
}
