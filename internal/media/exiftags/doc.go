// Package exiftags pulls a fixed set of descriptive tags out of the leading
// bytes of an image: EXIF IFD0 strings via goexif and Dublin Core fields from
// an embedded XMP packet.
package exiftags
