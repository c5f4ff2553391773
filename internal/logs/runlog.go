package logs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"apmeta/internal/logging"
	"apmeta/internal/services"
)

const maxLineBytes = 1024 * 1024

// Latest returns the most recent run log in dir.
func Latest(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, logging.RunLogPattern))
	if err != nil {
		return "", fmt.Errorf("scan log directory: %w", err)
	}
	if len(matches) == 0 {
		return "", services.Wrap(services.ErrNotFound, "logs", "latest", "No run logs in "+dir, nil)
	}
	// Run log names embed a sortable timestamp.
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// Tail returns up to limit trailing lines of path that satisfy keep, and the
// offset just past the last byte read. A nil keep accepts every line.
func Tail(path string, limit int, keep func(string) bool) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, offset, nil
	}

	ring := make([]string, limit)
	count, next := 0, 0
	lines, offset, err := scanFrom(file, 0, keep)
	if err != nil {
		return nil, 0, err
	}
	for _, line := range lines {
		ring[next] = line
		next = (next + 1) % limit
		if count < limit {
			count++
		}
	}
	out := make([]string, count)
	start := 0
	if count == limit {
		start = next
	}
	for i := 0; i < count; i++ {
		out[i] = ring[(start+i)%limit]
	}
	return out, offset, nil
}

// Follow polls path from offset and hands each new matching line to emit
// until ctx is done.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, keep func(string) bool, emit func(string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		lines, next, err := scanFrom(file, offset, keep)
		file.Close()
		if err != nil {
			return err
		}
		offset = next
		for _, line := range lines {
			emit(line)
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func scanFrom(file *os.File, offset int64, keep func(string) bool) ([]string, int64, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	var lines []string
	for {
		raw, err := reader.ReadString('\n')
		if len(raw) > 0 && raw[len(raw)-1] == '\n' {
			offset += int64(len(raw))
			line := raw[:len(raw)-1]
			if len(line) > maxLineBytes {
				line = line[:maxLineBytes]
			}
			if keep == nil || keep(line) {
				lines = append(lines, line)
			}
		}
		if errors.Is(err, io.EOF) {
			// A partial trailing line is re-read on the next poll.
			return lines, offset, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read log file: %w", err)
		}
	}
}

// BatchFilter keeps JSON log lines whose batch_id equals id. An empty id
// keeps everything.
func BatchFilter(id string) func(string) bool {
	if id == "" {
		return nil
	}
	return func(line string) bool {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return false
		}
		value, _ := entry[logging.FieldBatchID].(string)
		return value == id
	}
}
