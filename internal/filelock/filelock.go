// Package filelock provides the output directory lock and atomic writes used
// when rendering review pages, so that concurrent runs never interleave files
// and readers never observe a partially written page.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
// Returns an error if the lock operation fails.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
// Returns an error if the unlock operation fails.
func (fl *FileLock) Unlock() error {
	err := fl.flock.Unlock()
	if err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite writes data to a file atomically using a temp file and rename strategy.
// This ensures that readers never see partial writes, even if the write is interrupted.
//
// The process:
// 1. Create a temporary file in the same directory as the target
// 2. Write content to the temporary file
// 3. Rename the temporary file to the target path (atomic operation)
//
// If the operation fails at any point, the original file (if it exists) remains unchanged.
func AtomicWrite(path string, data []byte) error {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Create temporary file in same directory as target
	// This ensures the temp file is on the same filesystem, making rename atomic
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure temp file is cleaned up on error
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	// Write data to temp file
	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// Sync to ensure data is written to disk
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	// Close temp file
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Set correct permissions (0644 = rw-r--r--)
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Atomic rename: this is the key operation that makes the write atomic
	// On Unix systems, rename is atomic within the same filesystem
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	// Success - prevent cleanup of temp file since it's now renamed
	tempFile = nil

	return nil
}

// OutputLockName is the lock file created in the directory passed to
// AcquireOutput. The pipeline locks the review directory it owns, so the
// file never lands in the root of a checkout.
const OutputLockName = ".atreview.lock"

// ErrLocked is returned when another run holds the output lock
var ErrLocked = errors.New("output directory is locked by another run")

// OutputLock is an exclusive, non-blocking lock on an output directory.
// While held, the lock file contains the owning run ID.
type OutputLock struct {
	lock  *FileLock
	path  string
	runID string
}

// AcquireOutput locks dir for the run identified by runID. It does not wait:
// if another process holds the lock, it returns ErrLocked (wrapped) naming
// the run ID found in the lock file.
func AcquireOutput(dir, runID string) (*OutputLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, OutputLockName)
	lock := NewFileLock(path)

	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		holder, _ := os.ReadFile(path)
		return nil, fmt.Errorf("%s (run %s): %w", dir, strings.TrimSpace(string(holder)), ErrLocked)
	}

	// Rewrite in place; a rename would swap the inode out from under the lock
	if err := os.WriteFile(path, []byte(runID+"\n"), 0644); err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to record run ID in %s: %w", path, err)
	}

	return &OutputLock{lock: lock, path: path, runID: runID}, nil
}

// RunID returns the run that owns the lock
func (ol *OutputLock) RunID() string {
	return ol.runID
}

// Path returns the lock file path
func (ol *OutputLock) Path() string {
	return ol.path
}

// Release unlocks the output directory. The lock file is left in place.
func (ol *OutputLock) Release() error {
	return ol.lock.Unlock()
}
