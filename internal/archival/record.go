package archival

import (
	"maps"
	"slices"
	"strings"
	"time"

	"apmeta/internal/services"
)

// FormatMatch is the format identification result for one file.
type FormatMatch struct {
	ID     string `json:"id,omitempty"`
	MIME   string `json:"mime,omitempty"`
	Format string `json:"format,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Technical is the technical metadata report for one file.
type Technical struct {
	Report   string
	Modified time.Time
	IsImage  bool
	IsVideo  bool
}

// DateEvent is one entry of the event series. Empty members render as NULL.
type DateEvent struct {
	Dates      string `json:"eventDates"`
	Types      string `json:"eventTypes"`
	StartDates string `json:"eventStartDates"`
	EndDates   string `json:"eventEndDates"`
	Actors     string `json:"eventActors"`
}

// FileRecord accumulates everything learned about one file.
type FileRecord struct {
	Path            string            `json:"path"`
	Modified        time.Time         `json:"modified"`
	IsImage         bool              `json:"image"`
	IsVideo         bool              `json:"video"`
	Format          FormatMatch       `json:"sf"`
	TechnicalReport string            `json:"mediainforeport,omitempty"`
	Tags            map[string]string `json:"tags,omitempty"`
	Dates           []DateEvent       `json:"dates,omitempty"`
	Credits         []string          `json:"credits,omitempty"`
	Names           []string          `json:"names,omitempty"`
	Subjects        []string          `json:"subjects,omitempty"`
	Checksum        string            `json:"checksum,omitempty"`
}

func (f FileRecord) clone() FileRecord {
	f.Tags = maps.Clone(f.Tags)
	f.Dates = slices.Clone(f.Dates)
	f.Credits = slices.Clone(f.Credits)
	f.Names = slices.Clone(f.Names)
	f.Subjects = slices.Clone(f.Subjects)
	return f
}

// IdentifiedFile is a file whose format and technical metadata are known.
type IdentifiedFile struct {
	FileRecord
}

// NewIdentifiedFile assembles the record every later pass builds on. A file
// without a usable format match cannot be described.
func NewIdentifiedFile(path string, format FormatMatch, tech Technical, checksum string) (IdentifiedFile, error) {
	if strings.TrimSpace(path) == "" {
		return IdentifiedFile{}, services.Wrap(services.ErrValidation, "define", "identify", "File path is empty", nil)
	}
	if format.Error != "" {
		return IdentifiedFile{}, services.Wrap(services.ErrExternalTool, "define", "identify", "Format identification reported an error: "+format.Error, nil)
	}
	if format.MIME == "" && format.Format == "" && format.ID == "" {
		return IdentifiedFile{}, services.Wrap(services.ErrExternalTool, "define", "identify", "Format identification returned no match", nil)
	}
	return IdentifiedFile{FileRecord: FileRecord{
		Path:            path,
		Modified:        tech.Modified,
		IsImage:         tech.IsImage,
		IsVideo:         tech.IsVideo,
		Format:          format,
		TechnicalReport: tech.Report,
		Checksum:        checksum,
		Tags:            map[string]string{},
	}}, nil
}

// WithTags returns a copy of f with tags merged in.
func (f IdentifiedFile) WithTags(tags map[string]string) IdentifiedFile {
	out := IdentifiedFile{FileRecord: f.clone()}
	if out.Tags == nil {
		out.Tags = make(map[string]string, len(tags))
	}
	for k, v := range tags {
		if strings.TrimSpace(v) != "" {
			out.Tags[k] = v
		}
	}
	return out
}

// MatchedFile is an identified file whose artist names are settled.
type MatchedFile struct {
	IdentifiedFile
}

// Record returns a copy of the underlying file record.
func (f MatchedFile) Record() FileRecord {
	return f.clone()
}

// appendUnique appends values not already in list, preserving order.
func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}

// sortedTagValues returns tag values ordered by key so scans over a map are
// deterministic.
func sortedTagValues(tags map[string]string) []string {
	keys := slices.Sorted(maps.Keys(tags))
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, tags[k])
	}
	return values
}
