// Package filelock provides advisory locks for target directories and atomic
// file writes.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/harrison/creoclean/internal/fileutil"
)

// FileLock wraps a flock file lock for coordinating access between processes.
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
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// DirLocker hands out one lock per target directory. Lock files live in
// lockDir, never in the target itself, so locking does not change what a
// directory listing shows.
type DirLocker struct {
	lockDir string
}

// NewDirLocker creates a DirLocker keeping its lock files in lockDir.
// An empty lockDir means os.TempDir().
func NewDirLocker(lockDir string) *DirLocker {
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	return &DirLocker{lockDir: lockDir}
}

// LockPath returns the lock file used for dir. Different spellings of the same
// directory map to the same lock.
func (d *DirLocker) LockPath(dir string) (string, error) {
	abs, err := fileutil.CanonicalDir(dir)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(abs))
	name := "creoclean-" + hex.EncodeToString(sum[:8]) + ".lock"
	return filepath.Join(d.lockDir, name), nil
}

// TryLock attempts to lock dir without blocking. When acquired is false the
// directory is locked by someone else and unlock is nil.
func (d *DirLocker) TryLock(dir string) (unlock func() error, acquired bool, err error) {
	path, err := d.LockPath(dir)
	if err != nil {
		return nil, false, err
	}
	if err := os.MkdirAll(d.lockDir, 0755); err != nil {
		return nil, false, fmt.Errorf("failed to create lock directory %s: %w", d.lockDir, err)
	}

	lock := NewFileLock(path)
	acquired, err = lock.TryLock()
	if err != nil || !acquired {
		return nil, false, err
	}
	return lock.Unlock, true, nil
}

// AtomicWrite writes data to a file atomically using a temp file and rename strategy.
// Readers never see partial writes, even if the write is interrupted.
//
// If the operation fails at any point, the original file (if it exists) remains unchanged.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Same directory as the target so the rename stays on one filesystem
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	// Renamed into place; nothing left to clean up
	tempFile = nil

	return nil
}
