package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/pkg/calendar"
)

// parseTags splits a comma-separated tag list.
func parseTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseFields turns repeated name=value flags into a field map.
func parseFields(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --field %q: want name=value", p)
		}
		out[name] = value
	}
	return out, nil
}

// parseDate reads a YYYY-MM-DD day, or "today" / "" for the current time.
func parseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now.In(loc), nil
	case "yesterday":
		return now.In(loc).AddDate(0, 0, -1), nil
	}
	return calendar.ParseDay(s, loc)
}

// summaryLine is the one-line description of an entry: its primary fields joined.
func summaryLine(v models.Variant, e *models.Entry) string {
	var parts []string
	for _, f := range v.PrimaryFields {
		if text := strings.TrimSpace(e.Field(f)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " / ")
}

func printEntries(w io.Writer, v models.Variant, entries []models.Entry, loc *time.Location) {
	for i := range entries {
		e := &entries[i]
		star := " "
		if e.IsFavorite {
			star = "*"
		}
		fmt.Fprintf(w, "%s %s  %s\n", star, e.Date.In(loc).Format(time.DateOnly), truncate(summaryLine(v, e), 80))
		meta := "    ID: " + e.ID
		if len(e.Tags) > 0 {
			meta += " | Tags: " + strings.Join(e.Tags, ", ")
		}
		fmt.Fprintln(w, meta)
	}
}

func printEntry(w io.Writer, v models.Variant, e *models.Entry, loc *time.Location) {
	fmt.Fprintf(w, "ID:        %s\n", e.ID)
	fmt.Fprintf(w, "Date:      %s\n", e.Date.In(loc).Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Tags:      %s\n", strings.Join(e.Tags, ", "))
	fmt.Fprintf(w, "Favorite:  %t\n", e.IsFavorite)
	if e.FavoritedAt != nil {
		fmt.Fprintf(w, "Favorited: %s\n", e.FavoritedAt.In(loc).Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "Created:   %s\n", e.CreatedAt.In(loc).Format("2006-01-02 15:04:05"))
	for _, f := range v.Fields() {
		if text := e.Field(f); text != "" {
			fmt.Fprintf(w, "\n%s:\n%s\n", f, text)
		}
	}
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
