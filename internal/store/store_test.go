package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/daybook/internal/models"
)

func newTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSnapshot() *models.Snapshot {
	at := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	return &models.Snapshot{
		Version: models.SnapshotVersion,
		Variant: "dreams",
		Entries: []models.Entry{
			{
				ID:          "e1",
				Date:        time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC),
				Fields:      map[string]string{"title": "Flying dream"},
				Tags:        []string{"vivid"},
				IsFavorite:  true,
				FavoritedAt: &at,
			},
			{
				ID:     "e2",
				Date:   time.Date(2024, 3, 3, 7, 30, 0, 0, time.UTC),
				Fields: map[string]string{"title": "Falling"},
			},
		},
		CustomTags:         []string{"flying"},
		OnboardingComplete: true,
	}
}

func TestKind_IsValid(t *testing.T) {
	for _, k := range ValidKinds {
		assert.True(t, k.IsValid())
	}
	assert.False(t, Kind("postgres").IsValid())
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open("postgres", t.TempDir(), "dreams", newTestLogger(t))
	assert.Error(t, err)
}

func TestMemoryBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	snap := sampleSnapshot()
	require.NoError(t, b.Save(ctx, snap))
	snap.Entries[0].Tags[0] = "mutated"

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vivid", got.Entries[0].Tags[0], "stored snapshot must not alias the caller's")
	assert.Equal(t, 1, b.Saves())
}

func TestMemoryBackend_InjectedFailures(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	boom := errors.New("disk full")

	b.FailSaves(boom)
	assert.ErrorIs(t, b.Save(ctx, sampleSnapshot()), boom)
	assert.Equal(t, 0, b.Saves())

	b.FailLoads(boom)
	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestFileBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := Open(KindJSON, dir, "dreams", newTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	_, err = b.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, b.Save(ctx, sampleSnapshot()))
	_, statErr := os.Stat(filepath.Join(dir, "dreams.json.tmp"))
	assert.True(t, os.IsNotExist(statErr), "temporary file should be renamed away")

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotVersion, got.Version)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Flying dream", got.Entries[0].Fields["title"])
	assert.True(t, got.Entries[0].IsFavorite)
	require.NotNil(t, got.Entries[0].FavoritedAt)
	assert.Equal(t, []string{"flying"}, got.CustomTags)
	assert.True(t, got.OnboardingComplete)
}

func TestFileBackend_OwnWriteRecordedForWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dreams.json")
	b, err := NewFileBackend(path, newTestLogger(t))
	require.NoError(t, err)
	assert.False(t, b.isOwnWrite(time.Now()), "nothing written yet")

	require.NoError(t, b.Save(context.Background(), sampleSnapshot()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, b.isOwnWrite(info.ModTime()))
	assert.False(t, b.isOwnWrite(info.ModTime().Add(time.Second)))
}

func TestFileBackend_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dreams.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	b, err := NewFileBackend(path, newTestLogger(t))
	require.NoError(t, err)
	_, err = b.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)
}

func TestFileBackend_LegacyAndFutureVersions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dreams.json")
	b, err := NewFileBackend(path, newTestLogger(t))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"entries":[{"id":"old"}]}`), 0o600))
	snap, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotVersion, snap.Version)
	assert.Equal(t, "old", snap.Entries[0].ID)

	require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"entries":[]}`), 0o600))
	_, err = b.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestSQLiteBackend_RoundTripAndUpsert(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := Open(KindSQLite, dir, "dreams", newTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	_, err = b.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	snap := sampleSnapshot()
	require.NoError(t, b.Save(ctx, snap))

	snap.Entries = snap.Entries[:1]
	require.NoError(t, b.Save(ctx, snap))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "e1", got.Entries[0].ID)
}

func TestSQLiteBackend_SavedAtFromSnapshot(t *testing.T) {
	ctx := context.Background()
	b, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "daybook.db"), "dreams", newTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	snap := sampleSnapshot()
	snap.SavedAt = time.Date(2024, 3, 5, 21, 0, 0, 0, time.UTC)
	require.NoError(t, b.Save(ctx, snap))

	var savedAt string
	require.NoError(t, b.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshots WHERE key = ?`, "dreams").Scan(&savedAt))
	assert.Equal(t, "2024-03-05T21:00:00Z", savedAt)
}

func TestSQLiteBackend_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "daybook.db")

	dreams, err := NewSQLiteBackend(path, "dreams", newTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = dreams.Close() }()
	require.NoError(t, dreams.Save(ctx, sampleSnapshot()))

	outfits, err := NewSQLiteBackend(path, "outfits", newTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = outfits.Close() }()

	_, err = outfits.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
