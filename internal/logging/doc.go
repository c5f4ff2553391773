// Package logging assembles structured slog loggers and formatting helpers used
// across apmeta commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the file being processed, the enrichment stage, and the batch
// identifier. Every run also writes a JSON log file into the configured log
// directory; old run logs are pruned according to the retention setting.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
