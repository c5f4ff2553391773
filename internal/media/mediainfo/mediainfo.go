package mediainfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	labelPadding     = regexp.MustCompile(`[ \t]+: `)
	completeNameLine = regexp.MustCompile(`Complete [Nn]ame[^\n]*\n`)
)

// modifiedLayouts lists File_Modified_Date renderings seen across MediaInfo releases.
var modifiedLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
}

// Report is the technical metadata for one file.
type Report struct {
	Text     string
	Modified time.Time
	IsImage  bool
	IsVideo  bool
}

type jsonReport struct {
	Media struct {
		Tracks []track `json:"track"`
	} `json:"media"`
}

type track struct {
	Type             string `json:"@type"`
	Format           string `json:"Format"`
	FileModifiedDate string `json:"File_Modified_Date"`
}

// Inspect runs MediaInfo twice against path: once for the text report and
// once for the JSON track list.
func Inspect(ctx context.Context, binary, path string) (Report, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mediainfo"
	}
	if strings.TrimSpace(path) == "" {
		return Report{}, errors.New("mediainfo inspect: empty path")
	}

	text, err := run(ctx, binary, path)
	if err != nil {
		return Report{}, err
	}
	raw, err := run(ctx, binary, "--Output=JSON", path)
	if err != nil {
		return Report{}, err
	}

	report, err := ParseJSON(raw)
	if err != nil {
		return Report{}, err
	}
	report.Text = CleanText(string(text), filepath.Base(path))
	return report, nil
}

func run(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("mediainfo inspect: %w: %s", err, detail)
	}
	return output, nil
}

// ParseJSON extracts the capability flags and modification time from a
// `mediainfo --Output=JSON` payload. The General track is required.
func ParseJSON(data []byte) (Report, error) {
	var payload jsonReport
	if err := json.Unmarshal(data, &payload); err != nil {
		return Report{}, fmt.Errorf("mediainfo parse: %w", err)
	}
	var report Report
	var general *track
	for i := range payload.Media.Tracks {
		t := &payload.Media.Tracks[i]
		switch t.Type {
		case "General":
			if general == nil {
				general = t
			}
		case "Image":
			report.IsImage = true
		case "Video":
			report.IsVideo = true
		}
	}
	if general == nil {
		return Report{}, errors.New("mediainfo parse: no General track")
	}
	modified, err := ParseModified(general.FileModifiedDate)
	if err != nil {
		return Report{}, err
	}
	report.Modified = modified
	return report, nil
}

// ParseModified reads a File_Modified_Date value. MediaInfo emits UTC either
// as a prefix ("UTC 2021-05-12 10:00:00") or a suffix.
func ParseModified(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "UTC"))
	cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "UTC"))
	if cleaned == "" {
		return time.Time{}, errors.New("mediainfo parse: missing File_Modified_Date")
	}
	for _, layout := range modifiedLayouts {
		if parsed, err := time.ParseInLocation(layout, cleaned, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("mediainfo parse: unrecognized File_Modified_Date %q", value)
}

// CleanText tightens label padding and replaces the absolute path line with
// the file's base name so the report does not leak mount points.
func CleanText(text, baseName string) string {
	text = labelPadding.ReplaceAllString(text, ": ")
	text = completeNameLine.ReplaceAllLiteralString(text, "Original name: "+baseName+"\n")
	return strings.TrimSpace(text)
}
