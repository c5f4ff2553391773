// Package archival turns identified files into ISAD(G) records.
//
// Enrichment is a chain of pure passes over value types. Each pass takes a
// record and returns an augmented copy, so the same reference data and input
// always produce the same output and re-running a pass adds nothing. Ordering
// is carried by the types: passes that need format identification accept an
// IdentifiedFile, and subject resolution accepts only a MatchedFile whose
// artist names have been settled.
//
// Formatting maps each enriched file onto one Item record; consolidation is
// the batch-wide reduce that synthesizes the folder-level parent and lifts
// homogeneous values onto it. Consolidation assumes a closed batch: running it
// over a set that later grows would have already stripped promoted values
// from the earlier children.
package archival
