package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"apmeta/internal/config"
	"apmeta/internal/workflow"
)

type defineFlags struct {
	recurse     bool
	includeExt  bool
	threshold   float64
	concurrency int
	skipFailed  bool
	output      string
	debugDump   bool
}

func newDefineCommand(ctx *commandContext) *cobra.Command {
	var flags defineFlags

	cmd := &cobra.Command{
		Use:   "define [source]",
		Short: "Describe a folder of digital files as ISAD(G) records",
		Long: "Identify, enrich and consolidate every file in the source folder, then write\n" +
			"the archival description CSV (apmeta-<batchID>.csv) into the folder.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyDefineFlags(cmd, cfg, flags); err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			logger, err := ctx.newLogger(stderr)
			if err != nil {
				return err
			}

			var progress io.Writer
			if shouldColorize(stderr) {
				progress = stderr
			}
			result, err := workflow.NewDefiner(cfg, logger).Define(cmd.Context(), workflow.DefineOptions{
				Source:   sourceArg(args),
				Output:   flags.output,
				Progress: progress,
			})
			if err != nil {
				return err
			}
			printDefineResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.recurse, "recurse", "r", false, "Include files in subfolders")
	cmd.Flags().BoolVar(&flags.includeExt, "include-ext", false, "Keep the file extension in item titles")
	cmd.Flags().Float64VarP(&flags.threshold, "threshold", "t", 0, "Minimum fuzzy artist match score (0-1)")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "j", 0, "Files enriched in parallel")
	cmd.Flags().BoolVar(&flags.skipFailed, "skip-failed", false, "Exclude files that fail identification instead of aborting")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the apmeta file to this path")
	cmd.Flags().BoolVar(&flags.debugDump, "debug-dump", false, "Dump enriched file records as JSON to the log directory")
	return cmd
}

// applyDefineFlags overlays explicitly set flags on the loaded config.
func applyDefineFlags(cmd *cobra.Command, cfg *config.Config, flags defineFlags) error {
	changed := cmd.Flags().Changed
	if changed("recurse") {
		cfg.Define.Recurse = flags.recurse
	}
	if changed("include-ext") {
		cfg.Define.IncludeExtInTitle = flags.includeExt
	}
	if changed("threshold") {
		cfg.Define.FuzzyArtistMatchMinThreshold = flags.threshold
	}
	if changed("concurrency") {
		cfg.Define.Concurrency = flags.concurrency
	}
	if changed("skip-failed") {
		cfg.Define.SkipFailedFiles = flags.skipFailed
	}
	if changed("debug-dump") {
		cfg.Define.DebugDump = flags.debugDump
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func printDefineResult(out io.Writer, result *workflow.DefineResult, colorize bool) {
	batch := result.BatchID
	if result.Reused {
		batch += " (reused)"
	}
	lines := []string{
		renderStatusLine("Batch", statusInfo, batch, colorize),
		renderStatusLine("Records", statusOK, fmt.Sprintf("%d from %d files in %s", len(result.Records), result.Files, result.Duration.Round(10*time.Millisecond)), colorize),
	}
	for _, skipped := range result.Skipped {
		lines = append(lines, renderStatusLine("Skipped", statusWarn, fmt.Sprintf("%s: %v", filepath.Base(skipped.Path), skipped.Err), colorize))
	}
	if result.DebugPath != "" {
		lines = append(lines, renderStatusLine("Debug dump", statusInfo, result.DebugPath, colorize))
	}
	lines = append(lines, renderStatusLine("Output", statusOK, result.OutputPath, colorize))
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Described %s digital objects.\n", humanize.Comma(int64(result.Files-len(result.Skipped))))
}
