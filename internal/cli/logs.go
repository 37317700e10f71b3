package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/logtail"
)

func newLogsCmd(flags *Flags) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of folio's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return err
			}
			if flags.DataDir != "" {
				cfg = cfg.WithDataDir(flags.DataDir)
			}
			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to print (0 prints all)")
	return cmd
}
