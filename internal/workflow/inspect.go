package workflow

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"apmeta/internal/config"
	"apmeta/internal/isad"
	"apmeta/internal/services"
)

// HierarchyRow is one record of an apmeta file as shown by inspect.
type HierarchyRow struct {
	LegacyID   string
	ParentID   string
	Identifier string
	Level      string
	Title      string
	Dates      string
	Path       string
	// SizeBytes is -1 when the digital object is missing.
	SizeBytes int64
}

// IsContainer reports whether the row describes the folder itself.
func (r HierarchyRow) IsContainer() bool {
	return r.Level == isad.LevelFile
}

// Hierarchy is the parent/child view of an apmeta file.
type Hierarchy struct {
	RecordFile string
	Rows       []HierarchyRow
}

// Children counts item-level rows.
func (h *Hierarchy) Children() int {
	n := 0
	for _, row := range h.Rows {
		if !row.IsContainer() {
			n++
		}
	}
	return n
}

// TotalBytes sums the sizes of digital objects that exist.
func (h *Hierarchy) TotalBytes() int64 {
	var total int64
	for _, row := range h.Rows {
		if row.SizeBytes > 0 {
			total += row.SizeBytes
		}
	}
	return total
}

// Inspect reads the apmeta file for source and returns its hierarchy.
func Inspect(source string) (*Hierarchy, error) {
	recordFile, err := LocateRecordFile(source)
	if err != nil {
		return nil, err
	}
	records, err := isad.ReadFile(recordFile)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "inspect", "read csv", "Unable to read apmeta file", err)
	}
	h := &Hierarchy{RecordFile: recordFile, Rows: make([]HierarchyRow, 0, len(records))}
	for _, r := range records {
		row := HierarchyRow{
			LegacyID:   r.Get(isad.LegacyID),
			ParentID:   r.Get(isad.ParentID),
			Identifier: r.Get(isad.Identifier),
			Level:      r.Get(isad.LevelOfDescription),
			Title:      r.Get(isad.Title),
			Dates:      r.Get(isad.EventDates),
			Path:       r.Get(isad.DigitalObjectPath),
		}
		if row.Path != "" {
			row.SizeBytes = -1
			if info, statErr := os.Stat(row.Path); statErr == nil {
				row.SizeBytes = info.Size()
			}
		}
		h.Rows = append(h.Rows, row)
	}
	return h, nil
}

// OpenViewer launches the configured spreadsheet viewer on path and returns
// without waiting for it.
func OpenViewer(cfg *config.Config, path string) error {
	viewer := strings.TrimSpace(cfg.Inspect.Viewer)
	if viewer == "" {
		return services.Wrap(services.ErrConfiguration, "inspect", "open", "No viewer configured", nil)
	}
	resolved, err := exec.LookPath(viewer)
	if err != nil {
		return services.Wrap(services.ErrDependency, "inspect", "open",
			fmt.Sprintf("Viewer %q is not installed or not on PATH", viewer), err)
	}
	args := append(append([]string(nil), cfg.Inspect.ViewerArgs...), path)
	proc := exec.Command(resolved, args...)
	if err := proc.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "inspect", "open", "Unable to launch viewer", err)
	}
	return proc.Process.Release()
}
