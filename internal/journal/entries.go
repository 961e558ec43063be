package journal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/daybook/internal/metrics"
	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/pkg/calendar"
)

// Add stores e and returns the stored copy. An empty ID is assigned; an ID
// that already exists is replaced with a fresh one so IDs stay unique.
//
// In one-per-day variants, adding on a day that already has an entry
// rewrites that entry instead, keeping its ID and favorite state.
func (s *Store) Add(ctx context.Context, e models.Entry) models.Entry {
	e = e.Clone()
	now := s.now()

	s.mu.Lock()
	e.Tags = s.normalizeTagsLocked(e.Tags)

	if s.variant.OnePerDay {
		if i := s.dayIndexLocked(e.Date, ""); i >= 0 {
			existing := &s.entries[i]
			existing.Date = e.Date
			existing.Fields = e.Fields
			existing.Tags = e.Tags
			existing.UpdatedAt = now
			s.registerTagsLocked(e.Tags)
			s.persistLocked(ctx)
			out := existing.Clone()
			s.mu.Unlock()

			s.logger.Debug("entry for day replaced", "id", out.ID, "date", out.Date.Format(time.DateOnly))
			metrics.Inc(metrics.EntriesUpdated)
			s.notify(Change{Kind: ChangeUpdated, EntryID: out.ID})
			return out
		}
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if _, dup := s.index[e.ID]; dup {
		fresh := uuid.NewString()
		s.logger.Warn("add with existing id, assigning a new one", "id", e.ID, "new_id", fresh)
		e.ID = fresh
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	switch {
	case !e.IsFavorite:
		e.FavoritedAt = nil
	case e.FavoritedAt == nil:
		at := now
		e.FavoritedAt = &at
	}

	s.index[e.ID] = len(s.entries)
	s.entries = append(s.entries, e)
	s.registerTagsLocked(e.Tags)
	s.persistLocked(ctx)
	out := e.Clone()
	s.mu.Unlock()

	metrics.Inc(metrics.EntriesAdded)
	s.notify(Change{Kind: ChangeAdded, EntryID: out.ID})
	return out
}

// Update replaces the stored entry with the same ID as e. It returns false,
// changing nothing, when the ID is unknown or when a one-per-day variant
// would end up with two entries on e's day.
func (s *Store) Update(ctx context.Context, e models.Entry) bool {
	e = e.Clone()
	now := s.now()

	s.mu.Lock()
	i, ok := s.index[e.ID]
	if !ok {
		s.mu.Unlock()
		s.missing("update", e.ID)
		return false
	}
	if s.variant.OnePerDay && s.dayIndexLocked(e.Date, e.ID) >= 0 {
		s.mu.Unlock()
		s.logger.Warn("update rejected, day already has an entry", "id", e.ID, "date", e.Date.Format(time.DateOnly))
		return false
	}

	prev := s.entries[i]
	e.Tags = s.normalizeTagsLocked(e.Tags)
	e.CreatedAt = prev.CreatedAt
	e.UpdatedAt = now
	switch {
	case !e.IsFavorite:
		e.FavoritedAt = nil
	case e.FavoritedAt == nil && prev.IsFavorite:
		e.FavoritedAt = prev.FavoritedAt
	case e.FavoritedAt == nil:
		at := now
		e.FavoritedAt = &at
	}

	s.entries[i] = e
	s.registerTagsLocked(e.Tags)
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.Inc(metrics.EntriesUpdated)
	s.notify(Change{Kind: ChangeUpdated, EntryID: e.ID})
	return true
}

// Delete removes the entry with the given ID. Deleting an unknown ID is a no-op
// and returns false.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		s.missing("delete", id)
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.reindexLocked()
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.Inc(metrics.EntriesDeleted)
	s.notify(Change{Kind: ChangeDeleted, EntryID: id})
	return true
}

// ToggleFavorite flips the entry's favorite flag. Turning it on stamps
// FavoritedAt with the current time; turning it off clears it.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (models.Entry, bool) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		s.missing("toggle favorite", id)
		return models.Entry{}, false
	}
	e := &s.entries[i]
	e.IsFavorite = !e.IsFavorite
	if e.IsFavorite {
		at := s.now()
		e.FavoritedAt = &at
	} else {
		e.FavoritedAt = nil
	}
	s.persistLocked(ctx)
	out := e.Clone()
	s.mu.Unlock()

	metrics.Inc(metrics.FavoritesToggled)
	s.notify(Change{Kind: ChangeFavorite, EntryID: id})
	return out, true
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (models.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Entry{}, false
	}
	return s.entries[i].Clone(), true
}

// Entries returns every entry in insertion order.
func (s *Store) Entries() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Entry, len(s.entries))
	for i := range s.entries {
		out[i] = s.entries[i].Clone()
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// AddCustomTag registers a user-typed tag. It returns false when the name is
// empty or already known.
func (s *Store) AddCustomTag(ctx context.Context, name string) bool {
	s.mu.Lock()
	if !s.registry.Add(name) {
		s.mu.Unlock()
		return false
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeTags})
	return true
}

// AllTags returns built-in tags followed by custom tags in insertion order.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.All()
}

// CompleteOnboarding records that the user finished onboarding.
func (s *Store) CompleteOnboarding(ctx context.Context) {
	s.mu.Lock()
	if s.onboarded {
		s.mu.Unlock()
		return
	}
	s.onboarded = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeOnboarding})
}

// OnboardingComplete reports whether onboarding was completed.
func (s *Store) OnboardingComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboarded
}

func (s *Store) missing(op, id string) {
	metrics.Inc(metrics.NotFound)
	s.logger.Warn(op+" on unknown entry", "id", id)
}

// dayIndexLocked returns the position of an entry on t's calendar day other
// than skipID, or -1.
func (s *Store) dayIndexLocked(t time.Time, skipID string) int {
	for i := range s.entries {
		if s.entries[i].ID != skipID && calendar.SameDay(s.entries[i].Date, t, s.loc) {
			return i
		}
	}
	return -1
}

// normalizeTagsLocked trims, deduplicates and canonicalizes tags. Free-form
// tags are lowercased; tags matching a built-in take the built-in spelling.
func (s *Store) normalizeTagsLocked(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	builtin := s.registry.Builtin()
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		canon := strings.ToLower(t)
		for _, b := range builtin {
			if strings.EqualFold(b, t) {
				canon = b
				break
			}
		}
		key := strings.ToLower(canon)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, canon)
	}
	return out
}

// registerTagsLocked adds unseen free-form tags to the registry.
func (s *Store) registerTagsLocked(tagList []string) {
	if s.variant.TagMode != models.TagModeFree {
		return
	}
	for _, t := range tagList {
		s.registry.Add(t)
	}
}
