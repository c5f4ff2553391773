package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"apmeta/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var batch string
	var file string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the most recent run log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(file)
			if path == "" {
				path, err = logs.Latest(cfg.Paths.LogDir)
				if err != nil {
					return err
				}
			}
			keep := logs.BatchFilter(strings.TrimSpace(batch))
			out := cmd.OutOrStdout()

			tail, offset, err := logs.Tail(path, lines, keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "==> %s <==\n", path)
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, 250*time.Millisecond, keep, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&batch, "batch", "", "Only show lines for this batch identifier")
	cmd.Flags().StringVar(&file, "file", "", "Read this log file instead of the newest run log")
	return cmd
}
