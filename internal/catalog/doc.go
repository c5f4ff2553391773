// Package catalog persists the batch ledger in SQLite.
//
// Each source folder is bound to one batch identifier for its lifetime, so
// re-describing a folder keeps the identifier AtoM already knows. The ledger
// also keeps the checksum recorded for every digital object, which verify
// falls back on when an apmeta file lacks digitalObjectChecksum values.
//
// A folder lock serializes define runs over the same folder across processes.
package catalog
