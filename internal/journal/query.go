package journal

import (
	"sort"
	"strings"
	"time"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/pkg/calendar"
)

// Query narrows and orders Filtered results. The zero value returns every
// entry, newest first.
type Query struct {
	// Search is matched case-insensitively against the variant's primary fields.
	Search string
	// Tags keeps entries carrying at least one of these tags. Empty matches all.
	Tags []string
	// Order defaults to models.SortNewestFirst.
	Order models.SortOrder
	// FavoritesOnly keeps only favorite entries.
	FavoritesOnly bool
	// Limit caps the number of results when positive.
	Limit int
}

// Filtered returns the entries matching q. Ties keep insertion order.
func (s *Store) Filtered(q Query) []models.Entry {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	s.mu.RLock()
	var out []models.Entry
	for i := range s.entries {
		e := &s.entries[i]
		if q.FavoritesOnly && !e.IsFavorite {
			continue
		}
		if needle != "" && !s.matchesText(e, needle) {
			continue
		}
		if !matchesAnyTag(e, q.Tags) {
			continue
		}
		out = append(out, e.Clone())
	}
	s.mu.RUnlock()

	sortEntries(out, q.Order)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// EntriesForDate returns the entries on d's calendar day, oldest first.
func (s *Store) EntriesForDate(d time.Time) []models.Entry {
	return s.collect(func(e *models.Entry) bool {
		return calendar.SameDay(e.Date, d, s.loc)
	})
}

// EntriesForMonth returns the entries in d's calendar month and year, oldest first.
func (s *Store) EntriesForMonth(d time.Time) []models.Entry {
	return s.collect(func(e *models.Entry) bool {
		return calendar.SameMonth(e.Date, d, s.loc)
	})
}

func (s *Store) collect(keep func(*models.Entry) bool) []models.Entry {
	s.mu.RLock()
	var out []models.Entry
	for i := range s.entries {
		if keep(&s.entries[i]) {
			out = append(out, s.entries[i].Clone())
		}
	}
	s.mu.RUnlock()
	sortEntries(out, models.SortOldestFirst)
	return out
}

func (s *Store) matchesText(e *models.Entry, needle string) bool {
	for _, f := range s.variant.PrimaryFields {
		if strings.Contains(strings.ToLower(e.Field(f)), needle) {
			return true
		}
	}
	return false
}

func matchesAnyTag(e *models.Entry, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		if e.HasTag(strings.TrimSpace(w)) {
			return true
		}
	}
	return false
}

func sortEntries(entries []models.Entry, order models.SortOrder) {
	switch order {
	case models.SortOldestFirst:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})
	case models.SortRecentlyFavorited:
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i].FavoritedAt, entries[j].FavoritedAt
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date.After(entries[j].Date)
		})
	}
}
