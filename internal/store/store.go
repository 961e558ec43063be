package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ajitpratap0/daybook/internal/models"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// ErrUnsupportedVersion is returned by Load when the stored snapshot was
// written by a newer schema than this build understands.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Backend persists a journal as one serialized snapshot.
type Backend interface {
	// Load reads the most recently saved snapshot.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *models.Snapshot) error

	// Close releases resources held by the backend.
	Close() error
}

// Kind names a backend implementation.
type Kind string

const (
	KindJSON   Kind = "json"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// ValidKinds is the set of all valid backend kinds.
var ValidKinds = []Kind{KindJSON, KindSQLite, KindMemory}

// IsValid returns true if the backend kind is recognized.
func (k Kind) IsValid() bool {
	for _, v := range ValidKinds {
		if k == v {
			return true
		}
	}
	return false
}

// sqliteFileName is the database shared by every variant when using the SQLite backend.
const sqliteFileName = "daybook.db"

// Open creates the backend of the given kind for one variant under dataDir.
func Open(kind Kind, dataDir, variant string, logger *slog.Logger) (Backend, error) {
	switch kind {
	case KindJSON:
		return NewFileBackend(filepath.Join(dataDir, variant+".json"), logger)
	case KindSQLite:
		return NewSQLiteBackend(filepath.Join(dataDir, sqliteFileName), variant, logger)
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

func encodeSnapshot(snap *models.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot parses a stored snapshot. Snapshots written before the
// version field existed decode as version 0 and are upgraded in place.
func decodeSnapshot(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version > models.SnapshotVersion {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrUnsupportedVersion, snap.Version, models.SnapshotVersion)
	}
	snap.Version = models.SnapshotVersion
	return &snap, nil
}
