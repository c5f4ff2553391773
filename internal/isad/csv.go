package isad

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"apmeta/internal/fileutil"
)

// Write emits records as CSV with a header row of Schema. Absent fields are
// written empty.
func Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(Schema))
	for i, f := range Schema {
		header[i] = string(f)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(Schema))
	for n, record := range records {
		for i, f := range Schema {
			row[i] = record.Get(f)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", n+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to path atomically, creating parent directories.
func WriteFile(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// Read parses a CSV record set. Columns are matched by header name so files
// exported with a reordered or partial template still load; unknown columns
// are ignored. Every returned record carries the full schema.
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("record file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]Field, len(header))
	known := 0
	for i, name := range header {
		f := Field(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if f.Known() {
			columns[i] = f
			known++
		}
	}
	if known == 0 {
		return nil, errors.New("record file has no recognizable columns")
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(records)+1, err)
		}
		record := NewRecord()
		for i, value := range row {
			if i < len(columns) && columns[i] != "" {
				record.Set(columns[i], value)
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ReadFile loads a record set from path.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}
