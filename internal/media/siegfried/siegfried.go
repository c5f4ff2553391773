package siegfried

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Report is the subset of `sf -json` output apmeta consumes.
type Report struct {
	Version string `json:"siegfried"`
	Files   []File `json:"files"`
}

// File is the identification result for one path.
type File struct {
	Filename string  `json:"filename"`
	Filesize int64   `json:"filesize"`
	Errors   string  `json:"errors"`
	Matches  []Match `json:"matches"`
}

// Match is a single format identification.
type Match struct {
	Namespace string `json:"ns"`
	ID        string `json:"id"`
	Format    string `json:"format"`
	Version   string `json:"version"`
	MIME      string `json:"mime"`
	Basis     string `json:"basis"`
	Warning   string `json:"warning"`
}

// Identify runs siegfried against path and returns the first match.
func Identify(ctx context.Context, binary, path string) (Match, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "sf"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Match{}, errors.New("siegfried identify: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-nr", "-json", path)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return Match{}, fmt.Errorf("siegfried identify: %w: %s", err, detail)
	}
	return Parse(output)
}

// Parse decodes a siegfried JSON report and selects the first match of the
// first file. A file-level error or an empty match list is an error.
func Parse(data []byte) (Match, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Match{}, fmt.Errorf("siegfried parse: %w", err)
	}
	if len(report.Files) == 0 {
		return Match{}, errors.New("siegfried returned no files")
	}
	file := report.Files[0]
	if msg := strings.TrimSpace(file.Errors); msg != "" {
		return Match{}, fmt.Errorf("siegfried: %s", msg)
	}
	if len(file.Matches) == 0 {
		return Match{}, errors.New("siegfried could not identify the file")
	}
	return file.Matches[0], nil
}
