// Package fileutil holds filesystem helpers shared by the define and verify
// commands: content checksums, bounded head reads, folder listing with junk
// filtering, and atomic output writes.
package fileutil
