// Package services defines shared utilities consumed by the pipeline stages
// and the external tool adapters.
//
// Key responsibilities:
//   - Context helpers that stamp file paths, stage names, batch identifiers,
//     and correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that let callers decide
//     whether a failure is fatal for one file or for the whole batch.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
