// Package siegfried wraps the `sf` format identification tool, turning its
// JSON report into a single PRONOM match per file.
package siegfried
