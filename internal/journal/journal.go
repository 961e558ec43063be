// Package journal implements the entry store shared by every journaling app
// variant: the authoritative in-memory collection of entries, kept in sync
// with a persistence backend and queried by the presentation layer.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/daybook/internal/metrics"
	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/store"
	"github.com/ajitpratap0/daybook/internal/tags"
)

// ChangeKind identifies what a mutation did.
type ChangeKind string

const (
	ChangeAdded      ChangeKind = "added"
	ChangeUpdated    ChangeKind = "updated"
	ChangeDeleted    ChangeKind = "deleted"
	ChangeFavorite   ChangeKind = "favorite"
	ChangeTags       ChangeKind = "tags"
	ChangeOnboarding ChangeKind = "onboarding"
	ChangeReloaded   ChangeKind = "reloaded"
)

// Change is delivered to observers after the store's state changed.
// Observers re-read whatever they display; EntryID is empty for store-wide changes.
type Change struct {
	Kind    ChangeKind
	EntryID string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the time source used for timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the calendar used for day and month grouping. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// Store owns the entries of one journal.
type Store struct {
	variant models.Variant
	backend store.Backend
	logger  *slog.Logger
	now     func() time.Time
	loc     *time.Location

	mu        sync.RWMutex
	entries   []models.Entry // insertion order
	index     map[string]int // id -> position in entries
	registry  *tags.Registry
	onboarded bool

	obsMu     sync.Mutex
	observers map[int]func(Change)
	nextObs   int
}

// Open builds a store for variant and loads its persisted state once.
// A missing or unreadable snapshot yields an empty journal; only an invalid
// variant definition is an error.
func Open(ctx context.Context, variant models.Variant, backend store.Backend, opts ...Option) (*Store, error) {
	if err := variant.Validate(); err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	s := &Store{
		variant:   variant,
		backend:   backend,
		logger:    slog.Default(),
		now:       time.Now,
		loc:       time.Local,
		index:     make(map[string]int),
		registry:  tags.New(variant.BuiltinTags),
		observers: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := backend.Load(ctx)
	switch {
	case err == nil:
		s.apply(snap)
		s.logger.Debug("journal loaded", "variant", variant.Name, "entries", len(s.entries))
	case errors.Is(err, store.ErrNoSnapshot):
		s.logger.Debug("no saved journal, starting empty", "variant", variant.Name)
	default:
		metrics.Inc(metrics.LoadFallbacks)
		s.logger.Error("loading journal failed, starting empty", "variant", variant.Name, "error", err)
	}
	return s, nil
}

// Variant returns the variant this store was opened with.
func (s *Store) Variant() models.Variant {
	return s.variant
}

// Location returns the calendar location used for day and month grouping.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Reload replaces the in-memory state with the backend's current snapshot.
// When the backend holds nothing the journal becomes empty; on a read error
// the current state is kept and the error returned.
// The write lock is held across the load so a concurrent mutation lands
// either before the read or on top of the reloaded state.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	snap, err := s.backend.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
		s.mu.Unlock()
		s.logger.Error("reloading journal failed, keeping current state", "error", err)
		return fmt.Errorf("reloading journal: %w", err)
	}
	if snap == nil {
		snap = &models.Snapshot{}
	}

	s.entries = nil
	s.index = make(map[string]int)
	s.registry = tags.New(s.variant.BuiltinTags)
	s.onboarded = false
	s.apply(snap)
	count := len(s.entries)
	s.mu.Unlock()

	metrics.Inc(metrics.Reloads)
	s.logger.Info("journal reloaded", "entries", count)
	s.notify(Change{Kind: ChangeReloaded})
	return nil
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

// notify runs observers outside the state lock so they may query the store.
func (s *Store) notify(c Change) {
	s.obsMu.Lock()
	fns := make([]func(Change), 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.obsMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// apply installs a loaded snapshot. Callers hold s.mu or own s exclusively.
func (s *Store) apply(snap *models.Snapshot) {
	if snap.Variant != "" && snap.Variant != s.variant.Name {
		s.logger.Warn("snapshot written by another variant", "snapshot", snap.Variant, "variant", s.variant.Name)
	}
	s.registry.Restore(snap.CustomTags)
	s.onboarded = snap.OnboardingComplete
	for i := range snap.Entries {
		e := snap.Entries[i].Clone()
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if _, dup := s.index[e.ID]; dup {
			s.logger.Warn("dropping entry with duplicate id", "id", e.ID)
			continue
		}
		s.index[e.ID] = len(s.entries)
		s.entries = append(s.entries, e)
	}
}

// persistLocked saves the whole collection. Failures are logged and counted,
// never returned: the in-memory state stays authoritative. Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	snap := &models.Snapshot{
		Version:            models.SnapshotVersion,
		Variant:            s.variant.Name,
		Entries:            make([]models.Entry, len(s.entries)),
		CustomTags:         s.registry.Custom(),
		OnboardingComplete: s.onboarded,
		SavedAt:            s.now().UTC(),
	}
	for i := range s.entries {
		snap.Entries[i] = s.entries[i].Clone()
	}
	if err := s.backend.Save(ctx, snap); err != nil {
		metrics.Inc(metrics.PersistFailures)
		s.logger.Error("persisting journal failed", "variant", s.variant.Name, "error", err)
	}
}

// reindexLocked rebuilds the id index after entries were removed.
func (s *Store) reindexLocked() {
	s.index = make(map[string]int, len(s.entries))
	for i := range s.entries {
		s.index[s.entries[i].ID] = i
	}
}
