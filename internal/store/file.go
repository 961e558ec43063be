package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ajitpratap0/daybook/internal/models"
)

// FileBackend stores the snapshot as a single JSON file.
type FileBackend struct {
	path   string
	logger *slog.Logger

	mu        sync.Mutex
	lastWrite time.Time // mod time of our own most recent write
}

// NewFileBackend creates a backend writing to path, creating its directory if needed.
func NewFileBackend(path string, logger *slog.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileBackend{path: filepath.Clean(path), logger: logger}, nil
}

// Path returns the snapshot file path.
func (f *FileBackend) Path() string {
	return f.path
}

// Load reads and decodes the snapshot file.
func (f *FileBackend) Load(_ context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", f.path, err)
	}
	return snap, nil
}

// Save writes the snapshot to a temporary file and renames it over the old one
// so a crash mid-write never leaves a truncated journal.
func (f *FileBackend) Save(_ context.Context, snap *models.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	// Rename keeps the mod time, so the write is recorded before the file
	// appears under its watched name.
	prev := f.lastWrite
	if info, statErr := os.Stat(tmp); statErr == nil {
		f.lastWrite = info.ModTime()
	}
	if err := os.Rename(tmp, f.path); err != nil {
		f.lastWrite = prev
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	f.logger.Debug("snapshot saved", "path", f.path, "entries", len(snap.Entries))
	return nil
}

// Close is a no-op for the file backend.
func (f *FileBackend) Close() error {
	return nil
}

// isOwnWrite reports whether a file with the given mod time is one we wrote.
func (f *FileBackend) isOwnWrite(modTime time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.lastWrite.IsZero() && !modTime.After(f.lastWrite)
}
