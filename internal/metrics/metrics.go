// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on the /debug/vars HTTP endpoint when a binary
// serves expvar; the CLI prints them with --metrics.
package metrics

import "expvar"

// Journal operation counters.
var (
	EntriesAdded     = expvar.NewInt("daybook_entries_added_total")
	EntriesUpdated   = expvar.NewInt("daybook_entries_updated_total")
	EntriesDeleted   = expvar.NewInt("daybook_entries_deleted_total")
	FavoritesToggled = expvar.NewInt("daybook_favorites_toggled_total")
	NotFound         = expvar.NewInt("daybook_not_found_total")
	PersistFailures  = expvar.NewInt("daybook_persist_failures_total")
	LoadFallbacks    = expvar.NewInt("daybook_load_fallbacks_total")
	Reloads          = expvar.NewInt("daybook_reloads_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Snapshot returns the current value of every journal counter keyed by name.
func Snapshot() map[string]int64 {
	out := make(map[string]int64)
	for name, c := range map[string]*expvar.Int{
		"entries_added":     EntriesAdded,
		"entries_updated":   EntriesUpdated,
		"entries_deleted":   EntriesDeleted,
		"favorites_toggled": FavoritesToggled,
		"not_found":         NotFound,
		"persist_failures":  PersistFailures,
		"load_fallbacks":    LoadFallbacks,
		"reloads":           Reloads,
	} {
		out[name] = c.Value()
	}
	return out
}
