package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Artist is one authority record.
type Artist struct {
	AuthorizedFormOfName string
	SubjectAccessPoints  []string
}

// LoadArtists reads an authority CSV from path.
func LoadArtists(path string) ([]Artist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artists: %w", err)
	}
	defer file.Close()
	return ReadArtists(file)
}

// ReadArtists parses an authority CSV with a header row. Only
// authorizedFormOfName and subjectAccessPoints are kept; subjects are
// pipe-separated. Rows without a name are skipped.
func ReadArtists(r io.Reader) ([]Artist, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("artists csv is empty")
		}
		return nil, fmt.Errorf("read artists header: %w", err)
	}
	nameCol, subjectCol := -1, -1
	for i, column := range header {
		switch strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")) {
		case "authorizedFormOfName":
			nameCol = i
		case "subjectAccessPoints":
			subjectCol = i
		}
	}
	if nameCol < 0 {
		return nil, errors.New("artists csv missing authorizedFormOfName column")
	}

	var artists []Artist
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read artists: %w", err)
		}
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		artists = append(artists, Artist{
			AuthorizedFormOfName: name,
			SubjectAccessPoints:  splitPipes(cell(row, subjectCol)),
		})
	}
	return artists, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitPipes(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, "|")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
