package workflow

import (
	"context"
	"errors"

	"apmeta/internal/archival"
	"apmeta/internal/config"
	"apmeta/internal/fileutil"
	"apmeta/internal/media/exiftags"
	"apmeta/internal/media/mediainfo"
	"apmeta/internal/media/siegfried"
)

// Toolchain gathers per-file facts from external sources.
type Toolchain interface {
	Identify(ctx context.Context, path string) (archival.FormatMatch, error)
	Technical(ctx context.Context, path string) (archival.Technical, error)
	Tags(ctx context.Context, path string) (map[string]string, error)
}

// ExternalToolchain runs siegfried and MediaInfo and reads embedded tags from
// the head of each file.
type ExternalToolchain struct {
	Siegfried     string
	MediaInfo     string
	ReadSizeBytes int
}

// NewExternalToolchain configures the toolchain from cfg.
func NewExternalToolchain(cfg *config.Config) ExternalToolchain {
	return ExternalToolchain{
		Siegfried:     cfg.SiegfriedBinary(),
		MediaInfo:     cfg.MediaInfoBinary(),
		ReadSizeBytes: cfg.Define.ExifReadSizeBytes,
	}
}

// Identify returns the first siegfried match for path.
func (t ExternalToolchain) Identify(ctx context.Context, path string) (archival.FormatMatch, error) {
	m, err := siegfried.Identify(ctx, t.Siegfried, path)
	if err != nil {
		return archival.FormatMatch{}, err
	}
	return archival.FormatMatch{ID: m.ID, MIME: m.MIME, Format: m.Format}, nil
}

// Technical returns the MediaInfo report for path.
func (t ExternalToolchain) Technical(ctx context.Context, path string) (archival.Technical, error) {
	r, err := mediainfo.Inspect(ctx, t.MediaInfo, path)
	if err != nil {
		return archival.Technical{}, err
	}
	return archival.Technical{Report: r.Text, Modified: r.Modified, IsImage: r.IsImage, IsVideo: r.IsVideo}, nil
}

// Tags reads EXIF and XMP tags from the first ReadSizeBytes of path.
func (t ExternalToolchain) Tags(ctx context.Context, path string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size := t.ReadSizeBytes
	if size <= 0 {
		size = config.Default().Define.ExifReadSizeBytes
	}
	buf, err := fileutil.ReadHead(path, size)
	if err != nil {
		return nil, err
	}
	tags, err := exiftags.Extract(buf)
	if errors.Is(err, exiftags.ErrNoMetadata) {
		return tags, nil
	}
	return tags, err
}
