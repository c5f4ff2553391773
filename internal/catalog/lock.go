package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"
)

// ErrFolderBusy reports that another process is describing the same folder.
var ErrFolderBusy = errors.New("folder is being described by another process")

// FolderLock is an exclusive, cross-process lock on one source folder.
type FolderLock struct {
	path string
	lock *flock.Flock
}

// AcquireFolderLock takes the lock for sourceDir without blocking. Lock files
// live in lockDir and are named after a hash of the cleaned folder path.
func AcquireFolderLock(lockDir, sourceDir string) (*FolderLock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	name := "define-" + strconv.FormatUint(xxhash.Sum64String(filepath.Clean(sourceDir)), 16) + ".lock"
	lockPath := filepath.Join(lockDir, name)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFolderBusy, sourceDir)
	}
	return &FolderLock{path: lockPath, lock: lock}, nil
}

// Path returns the lock file location.
func (l *FolderLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks the folder. Safe to call more than once.
func (l *FolderLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
