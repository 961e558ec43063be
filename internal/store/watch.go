package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external changes to a FileBackend's snapshot file, such as
// a sync tool or a second process replacing it. The backend's own writes are ignored.
type Watcher struct {
	fw      *fsnotify.Watcher
	backend *FileBackend
	logger  *slog.Logger
}

// NewWatcher watches the directory holding the backend's file.
func NewWatcher(backend *FileBackend, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(backend.Path())); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(backend.Path()), err)
	}
	return &Watcher{fw: fw, backend: backend, logger: logger}, nil
}

// Run delivers change notifications to onChange until ctx is cancelled or the
// watcher is closed. It blocks; callers usually run it in a goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.backend.Path() {
				continue
			}
			if w.external(event) {
				w.logger.Info("journal file changed externally", "op", event.Op.String(), "path", event.Name)
				onChange()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// external reports whether event was caused by someone other than the backend.
func (w *Watcher) external(event fsnotify.Event) bool {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return true
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			w.logger.Debug("stat after file event", "path", event.Name, "error", err)
			return false
		}
		return !w.backend.isOwnWrite(info.ModTime())
	default:
		return false
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
