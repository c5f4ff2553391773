package exiftags

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Tag names returned by Extract.
const (
	TagTitle            = "title"
	TagRights           = "rights"
	TagDescription      = "description"
	TagImageDescription = "ImageDescription"
	TagCopyright        = "Copyright"
	TagArtist           = "Artist"
)

// ErrNoMetadata is returned when neither EXIF nor XMP data is present.
var ErrNoMetadata = errors.New("no embedded metadata found")

var exifFields = []struct {
	name  exif.FieldName
	label string
}{
	{exif.ImageDescription, TagImageDescription},
	{exif.Copyright, TagCopyright},
	{exif.Artist, TagArtist},
}

var (
	xmpPacket = regexp.MustCompile(`(?s)<x:xmpmeta.*?</x:xmpmeta>`)
	xmpFields = map[string]*regexp.Regexp{
		TagTitle:       dublinCore("title"),
		TagRights:      dublinCore("rights"),
		TagDescription: dublinCore("description"),
	}
	markup = regexp.MustCompile(`<[^>]+>`)
)

// dublinCore matches the first rdf:li inside a dc:<name> container.
func dublinCore(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)<dc:` + name + `\b[^>]*>.*?<rdf:li\b[^>]*>(.*?)</rdf:li>`)
}

// Extract returns the known tags found in buf. Absent tags are simply
// missing from the map. An error is returned only when nothing could be
// read; partial results are returned alongside a nil error.
func Extract(buf []byte) (map[string]string, error) {
	tags := make(map[string]string)

	exifErr := readEXIF(buf, tags)
	xmpFound := readXMP(buf, tags)

	if exifErr != nil && !xmpFound {
		return tags, exifErr
	}
	return tags, nil
}

func readEXIF(buf []byte, tags map[string]string) error {
	x, err := exif.Decode(bytes.NewReader(buf))
	if x == nil {
		if err == nil || exifAbsent(err) {
			err = ErrNoMetadata
		}
		return fmt.Errorf("exif decode: %w", err)
	}
	for _, field := range exifFields {
		tag, getErr := x.Get(field.name)
		if getErr != nil {
			continue
		}
		value, valErr := tag.StringVal()
		if valErr != nil {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			tags[field.label] = value
		}
	}
	return nil
}

// exifAbsent reports goexif errors that mean the buffer has no EXIF segment:
// no APP1 marker before the end of the data, or an APP1 that is not EXIF.
func exifAbsent(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		strings.Contains(err.Error(), "failed to find exif intro marker")
}

func readXMP(buf []byte, tags map[string]string) bool {
	packet := xmpPacket.Find(buf)
	if packet == nil {
		return false
	}
	for label, pattern := range xmpFields {
		match := pattern.FindSubmatch(packet)
		if match == nil {
			continue
		}
		value := strings.TrimSpace(html.UnescapeString(markup.ReplaceAllString(string(match[1]), "")))
		if value != "" {
			tags[label] = value
		}
	}
	return true
}
