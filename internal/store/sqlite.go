package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ajitpratap0/daybook/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key      TEXT PRIMARY KEY,
	body     TEXT NOT NULL,
	saved_at TIMESTAMP NOT NULL
);`

// SQLiteBackend stores each variant's snapshot as one row of a key-value table.
type SQLiteBackend struct {
	db     *sql.DB
	key    string
	logger *slog.Logger
}

// NewSQLiteBackend opens (or creates) the database at path and prepares the schema.
// key selects the row, normally the variant name.
func NewSQLiteBackend(path, key string, logger *slog.Logger) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Debug("opened sqlite backend", "path", path, "key", key)
	return &SQLiteBackend{db: db, key: key, logger: logger}, nil
}

// Load reads the snapshot row for this backend's key.
func (s *SQLiteBackend) Load(ctx context.Context) (*models.Snapshot, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE key = ?`, s.key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("select snapshot %q: %w", s.key, err)
	}
	return decodeSnapshot([]byte(body))
}

// Save upserts the snapshot row for this backend's key.
func (s *SQLiteBackend) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, body, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, saved_at = excluded.saved_at`,
		s.key, string(data), savedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot %q: %w", s.key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
