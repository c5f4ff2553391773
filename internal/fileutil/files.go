package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// junkPattern matches operating-system clutter that never belongs in a batch.
var junkPattern = regexp.MustCompile(`^(?:` + strings.Join([]string{
	`\.DS_Store`,
	`\.AppleDouble`,
	`\.LSOverride`,
	`Icon\r`,
	`\._.*`,
	`\.Spotlight-V100`,
	`\.DocumentRevisions-V100`,
	`\.fseventsd`,
	`\.Trashes`,
	`\.TemporaryItems`,
	`\.VolumeIcon\.icns`,
	`\.com\.apple\.timemachine\.donotpresent`,
	`\.AppleDB`,
	`\.AppleDesktop`,
	`Network Trash Folder`,
	`Temporary Items`,
	`\.apdisk`,
	`Thumbs\.db`,
	`ehthumbs\.db`,
	`ehthumbs_vista\.db`,
	`[Dd]esktop\.ini`,
	`\$RECYCLE\.BIN`,
	`.*\.swp`,
	`npm-debug\.log`,
	`~\$.*`,
}, "|") + `)$`)

// IsJunk reports whether name is a known junk file name.
func IsJunk(name string) bool {
	return junkPattern.MatchString(name)
}

// ListFiles returns the regular files inside dir, skipping junk and any name
// for which skip returns true. When recurse is false subdirectories are
// ignored; otherwise they are walked depth-first.
func ListFiles(dir string, recurse bool, skip func(name string) bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to scan directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == dir {
			return nil
		}
		name := d.Name()
		if IsJunk(name) || (skip != nil && skip(name)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recurse {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to scan directory: %w", err)
	}
	return files, nil
}

// ReadHead reads at most n bytes from the start of path. Short files return
// what is available without error.
func ReadHead(path string, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
