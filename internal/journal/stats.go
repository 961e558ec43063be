package journal

import (
	"sort"
	"time"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/pkg/calendar"
)

// AggregateTagCounts returns how many entries carry each tag.
func (s *Store) AggregateTagCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tagCountsLocked()
}

// MostFrequentTag returns the most used tag and its count, or "" and 0 when no
// entry is tagged. Ties go to the tag listed first in AllTags, then by name.
func (s *Store) MostFrequentTag() (string, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mostFrequentLocked(s.tagCountsLocked())
}

// MonthlyCounts groups entries by calendar month, most recent month first.
// Months without entries are omitted.
func (s *Store) MonthlyCounts() []models.MonthCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monthlyLocked()
}

// CurrentStreak counts consecutive days with at least one entry, ending today.
// It is 0 when today has no entry.
func (s *Store) CurrentStreak() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentStreakLocked()
}

// MaxStreak returns the longest run of consecutive days with at least one entry.
func (s *Store) MaxStreak() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maxRun(s.dayNumbersLocked())
}

// Summary gathers the journal's statistics. Streaks are only computed for
// variants that track them.
func (s *Store) Summary() models.JournalStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := s.tagCountsLocked()
	st := models.JournalStats{
		Variant:      s.variant.Name,
		TotalEntries: len(s.entries),
		ByTag:        counts,
		Monthly:      s.monthlyLocked(),
	}
	for i := range s.entries {
		if s.entries[i].IsFavorite {
			st.Favorites++
		}
	}
	st.MostFrequentTag, st.MostFrequentCount = s.mostFrequentLocked(counts)
	if s.variant.Streaks {
		st.CurrentStreak = s.currentStreakLocked()
		st.MaxStreak = maxRun(s.dayNumbersLocked())
	}
	return st
}

func (s *Store) tagCountsLocked() map[string]int {
	counts := make(map[string]int)
	for i := range s.entries {
		for _, t := range s.entries[i].Tags {
			counts[t]++
		}
	}
	return counts
}

func (s *Store) mostFrequentLocked(counts map[string]int) (string, int) {
	best, bestN := "", 0
	for tag, n := range counts {
		if n > bestN || (n == bestN && s.tagBefore(tag, best)) {
			best, bestN = tag, n
		}
	}
	return best, bestN
}

// tagBefore orders known tags by registry position ahead of unknown ones.
func (s *Store) tagBefore(a, b string) bool {
	ra, rb := s.registry.Rank(a), s.registry.Rank(b)
	switch {
	case ra >= 0 && rb >= 0 && ra != rb:
		return ra < rb
	case ra >= 0 && rb < 0:
		return true
	case ra < 0 && rb >= 0:
		return false
	}
	return a < b
}

func (s *Store) monthlyLocked() []models.MonthCount {
	type key struct {
		year  int
		month time.Month
	}
	byMonth := make(map[key]int)
	for i := range s.entries {
		y, m := calendar.MonthOf(s.entries[i].Date, s.loc)
		byMonth[key{y, m}]++
	}
	out := make([]models.MonthCount, 0, len(byMonth))
	for k, n := range byMonth {
		out = append(out, models.MonthCount{
			Label: calendar.MonthLabel(k.year, k.month),
			Year:  k.year,
			Month: k.month,
			Count: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}

// dayNumbersLocked returns the distinct days with entries, ascending.
func (s *Store) dayNumbersLocked() []int64 {
	seen := make(map[int64]bool, len(s.entries))
	days := make([]int64, 0, len(s.entries))
	for i := range s.entries {
		d := calendar.DayNumber(s.entries[i].Date, s.loc)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

func (s *Store) currentStreakLocked() int {
	seen := make(map[int64]bool, len(s.entries))
	for i := range s.entries {
		seen[calendar.DayNumber(s.entries[i].Date, s.loc)] = true
	}
	streak := 0
	for d := calendar.DayNumber(s.now(), s.loc); seen[d]; d-- {
		streak++
	}
	return streak
}

func maxRun(days []int64) int {
	best, run := 0, 0
	for i, d := range days {
		if i > 0 && d == days[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
