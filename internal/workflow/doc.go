// Package workflow coordinates the apmeta commands end to end.
//
// Define lists a folder, checks external tools and reference data, enriches
// every file on a bounded worker pool, then formats, consolidates and writes
// the apmeta CSV and records the batch in the catalog. Verify and Inspect read
// an existing apmeta file back.
//
// External tools sit behind the Toolchain interface so tests can substitute
// canned identification results for siegfried and MediaInfo.
package workflow
