// Package mediainfo wraps the MediaInfo CLI. It captures the human-readable
// report stored as a general note and the JSON track list used to detect
// images, video, and the file modification time.
package mediainfo
