package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"apmeta/internal/workflow"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:     "inspect [source]",
		Aliases: []string{"open"},
		Short:   "Show the record hierarchy of an apmeta file",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			hierarchy, err := workflow.Inspect(sourceArg(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printHierarchy(out, hierarchy)
			if open || cmd.CalledAs() == "open" {
				if err := workflow.OpenViewer(cfg, hierarchy.RecordFile); err != nil {
					return err
				}
				fmt.Fprintf(out, "Opened %s in %s\n", hierarchy.RecordFile, cfg.Inspect.Viewer)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Open the apmeta file in the configured viewer")
	return cmd
}

func printHierarchy(out io.Writer, h *workflow.Hierarchy) {
	fmt.Fprintf(out, "Record file: %s\n", h.RecordFile)
	rows := make([][]string, 0, len(h.Rows))
	for _, row := range h.Rows {
		title := row.Title
		if !row.IsContainer() && row.ParentID != "" {
			title = "  " + title
		}
		size := ""
		switch {
		case row.SizeBytes < 0:
			size = "missing"
		case row.Path != "":
			size = humanize.IBytes(uint64(row.SizeBytes))
		}
		rows = append(rows, []string{
			row.LegacyID,
			row.Identifier,
			row.Level,
			title,
			strings.ReplaceAll(row.Dates, "|", ", "),
			size,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Identifier", "Level", "Title", "Dates", "Size"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	))
	fmt.Fprintf(out, "%d items, %s on disk\n", h.Children(), humanize.IBytes(uint64(h.TotalBytes())))
}
