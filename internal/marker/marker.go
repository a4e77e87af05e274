// Package marker provides the timestamp-record store used to rate-limit
// self-updates and clock checks: a single mutable instant per concern, read
// before a decision and written after a successful action.
//
// The production store is a plain marker file in a well-known location whose
// mtime carries the timestamp; the file content is empty and has no contract.
// There is deliberately no locking: every invocation of the dispatcher on a
// host reads and writes the same files, and concurrent invocations may both
// observe "due" and both act. The guarded actions (update fetch, clock check)
// are harmless to repeat, so the store trades linearizability for simplicity.
// Callers must not rely on a marker mutation being visible to a concurrent
// process.
package marker

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// Store persists a single timestamp.
type Store interface {
	// Get returns the recorded instant. ok is false when nothing has been
	// recorded yet; that is not an error.
	Get() (t time.Time, ok bool, err error)

	// Touch records the current time, creating the record if absent.
	Touch() error

	// Invalidate removes the record so the next Get reports absent.
	// Invalidating an absent record is a no-op.
	Invalidate() error
}

// FileStore keeps the timestamp as the mtime of a marker file.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore over the marker file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Get reads the marker file's modification time.
func (s *FileStore) Get() (time.Time, bool, error) {
	info, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return info.ModTime(), true, nil
}

// Touch sets the marker file's mtime to now, creating an empty file first if
// needed.
func (s *FileStore) Touch() error {
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	now := time.Now()
	return os.Chtimes(s.Path, now, now)
}

// Invalidate deletes the marker file.
func (s *FileStore) Invalidate() error {
	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
