// Package isad defines the flat ISAD(G) information-object schema used for
// AtoM imports and reads and writes record sets as CSV.
//
// A Record is a field map rather than a struct: consolidation removes fields
// from child records once they are promoted to the container, and a removed
// field must be distinguishable from one that is present but empty while the
// batch is in memory. Serialization always emits the full schema.
package isad
