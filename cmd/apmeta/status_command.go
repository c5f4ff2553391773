package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"apmeta/internal/catalog"
	"apmeta/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability, directory access and catalog summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Tools", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cfg), colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Paths", colorize)...)
			lines = append(lines, preflightLines(preflight.RunAll(cfg), colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Catalog", colorize)...)
			lines = append(lines, catalogLine(cmd.Context(), ctx, colorize))
			if ctx.configPath != "" {
				lines = append(lines, "", renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func catalogLine(ctx context.Context, c *commandContext, colorize bool) string {
	cfg, err := c.ensureConfig()
	if err != nil {
		return renderStatusLine("Batches", statusError, err.Error(), colorize)
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return renderStatusLine("Batches", statusError, err.Error(), colorize)
	}
	defer store.Close()
	batches, err := store.ListBatches(ctx)
	if err != nil {
		return renderStatusLine("Batches", statusError, err.Error(), colorize)
	}
	if len(batches) == 0 {
		return renderStatusLine("Batches", statusInfo, "No folders described yet", colorize)
	}
	latest := batches[0]
	for _, b := range batches[1:] {
		if b.UpdatedAt.After(latest.UpdatedAt) {
			latest = b
		}
	}
	msg := fmt.Sprintf("%d folders, last %s (%s)", len(batches), latest.SourceDir, humanize.Time(latest.UpdatedAt))
	return renderStatusLine("Batches", statusOK, msg, colorize)
}
