package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"apmeta/internal/workflow"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "verify [source]",
		Short: "Check digital objects against the checksums in an apmeta file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			result, err := workflow.NewVerifier(cfg, logger).Verify(cmd.Context(), sourceArg(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printVerifyResult(out, result, showAll)
			if result.Passed() != result.Total() {
				return fmt.Errorf("%d digital objects failed verification", result.Total()-result.Passed())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "List passing objects too")
	return cmd
}

func printVerifyResult(out io.Writer, result *workflow.VerifyResult, showAll bool) {
	fmt.Fprintf(out, "Verifying %s\n", result.RecordFile)
	rows := make([][]string, 0, len(result.Checks))
	for _, c := range result.Checks {
		if c.Status == workflow.StatusPassed && !showAll {
			continue
		}
		detail := ""
		switch {
		case c.Err != nil:
			detail = c.Err.Error()
		case c.FromCatalog:
			detail = "digest from catalog"
		}
		rows = append(rows, []string{filepath.Base(c.Path), string(c.Status), objectSize(c.Path), detail})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"File", "Status", "Size", "Detail"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		))
	}
	fmt.Fprintln(out, result.Summary())
}

func objectSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "-"
	}
	return humanize.IBytes(uint64(info.Size()))
}
