package models

import (
	"strings"
	"time"
)

// SnapshotVersion is the schema version written into every persisted snapshot.
const SnapshotVersion = 1

// SortOrder controls how query results are ordered.
type SortOrder string

const (
	SortNewestFirst SortOrder = "newest"
	SortOldestFirst SortOrder = "oldest"
	// SortRecentlyFavorited orders by FavoritedAt, most recent first.
	// Entries that are not favorites sort last.
	SortRecentlyFavorited SortOrder = "favorited"
)

// ValidSortOrders is the set of all valid sort orders.
var ValidSortOrders = []SortOrder{
	SortNewestFirst,
	SortOldestFirst,
	SortRecentlyFavorited,
}

// IsValid returns true if the sort order is recognized.
func (o SortOrder) IsValid() bool {
	for _, v := range ValidSortOrders {
		if o == v {
			return true
		}
	}
	return false
}

// Entry is one user-created journal record: a dream, an outfit, a beauty
// routine, a gratitude note, a task or a memory.
type Entry struct {
	ID          string            `json:"id" yaml:"id"`
	Date        time.Time         `json:"date" yaml:"date"`
	Fields      map[string]string `json:"fields" yaml:"fields"`
	Tags        []string          `json:"tags" yaml:"tags"`
	IsFavorite  bool              `json:"is_favorite" yaml:"is_favorite"`
	FavoritedAt *time.Time        `json:"favorited_at,omitempty" yaml:"favorited_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" yaml:"updated_at"`
}

// Field returns the value of the named text field, or "" when unset.
func (e *Entry) Field(name string) string {
	return e.Fields[name]
}

// HasTag reports whether the entry carries tag, compared case-insensitively.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never alias stored slices, maps or pointers.
func (e Entry) Clone() Entry {
	if e.Fields != nil {
		fields := make(map[string]string, len(e.Fields))
		for k, v := range e.Fields {
			fields[k] = v
		}
		e.Fields = fields
	}
	if e.Tags != nil {
		tags := make([]string, len(e.Tags))
		copy(tags, e.Tags)
		e.Tags = tags
	}
	if e.FavoritedAt != nil {
		at := *e.FavoritedAt
		e.FavoritedAt = &at
	}
	return e
}

// Snapshot is the persisted state of one journal: the full entry collection
// plus the custom tag registry and the onboarding flag.
type Snapshot struct {
	Version            int       `json:"version"`
	Variant            string    `json:"variant"`
	Entries            []Entry   `json:"entries"`
	CustomTags         []string  `json:"custom_tags,omitempty"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	SavedAt            time.Time `json:"saved_at"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	if s.Entries != nil {
		out.Entries = make([]Entry, len(s.Entries))
		for i := range s.Entries {
			out.Entries[i] = s.Entries[i].Clone()
		}
	}
	if s.CustomTags != nil {
		out.CustomTags = append([]string(nil), s.CustomTags...)
	}
	return &out
}

// MonthCount is the number of entries recorded in one calendar month.
type MonthCount struct {
	Label string     `json:"label"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// JournalStats holds summary statistics about a journal.
type JournalStats struct {
	Variant           string         `json:"variant"`
	TotalEntries      int            `json:"total_entries"`
	Favorites         int            `json:"favorites"`
	ByTag             map[string]int `json:"by_tag"`
	MostFrequentTag   string         `json:"most_frequent_tag,omitempty"`
	MostFrequentCount int            `json:"most_frequent_count,omitempty"`
	CurrentStreak     int            `json:"current_streak"`
	MaxStreak         int            `json:"max_streak"`
	Monthly           []MonthCount   `json:"monthly"`
}
