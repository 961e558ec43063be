// Package validate checks user input at the boundary, before the journal is
// called. The journal itself accepts any entry.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/pkg/calendar"
)

// MaxTagLength is the longest accepted tag name, in runes.
const MaxTagLength = 40

var (
	ErrEmptyText    = errors.New("text must not be empty")
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidTag   = errors.New("invalid tag")
	ErrFutureDate   = errors.New("date is in the future")
)

// Entry checks e against the rules of variant v. now and its location define
// "today" for variants that refuse future dates.
func Entry(v models.Variant, e models.Entry, now time.Time) error {
	hasText := false
	for name, value := range e.Fields {
		if !v.HasField(name) {
			return fmt.Errorf("%w %q for variant %s", ErrUnknownField, name, v.Name)
		}
		if v.IsPrimary(name) && strings.TrimSpace(value) != "" {
			hasText = true
		}
	}
	if !hasText {
		return fmt.Errorf("%w: one of %s is required", ErrEmptyText, strings.Join(v.PrimaryFields, ", "))
	}

	switch v.TagMode {
	case models.TagModeSingle:
		if len(e.Tags) > 1 {
			return fmt.Errorf("%w: variant %s takes a single tag", ErrInvalidTag, v.Name)
		}
		if len(e.Tags) == 1 && !builtin(v, e.Tags[0]) {
			return fmt.Errorf("%w %q: want one of %s", ErrInvalidTag, e.Tags[0], strings.Join(v.BuiltinTags, ", "))
		}
	default:
		for _, t := range e.Tags {
			if err := TagName(t); err != nil {
				return err
			}
		}
	}

	if v.NoFutureDates && !e.Date.IsZero() {
		loc := now.Location()
		if calendar.DaysBetween(now, e.Date, loc) > 0 {
			return fmt.Errorf("%w: %s", ErrFutureDate, e.Date.In(loc).Format(time.DateOnly))
		}
	}
	return nil
}

// TagName checks a user-typed tag.
func TagName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: tag must not be empty", ErrInvalidTag)
	case strings.Contains(trimmed, ","):
		return fmt.Errorf("%w %q: commas are not allowed", ErrInvalidTag, trimmed)
	case utf8.RuneCountInString(trimmed) > MaxTagLength:
		return fmt.Errorf("%w %q: longer than %d characters", ErrInvalidTag, trimmed, MaxTagLength)
	}
	return nil
}

func builtin(v models.Variant, tag string) bool {
	for _, b := range v.BuiltinTags {
		if strings.EqualFold(b, strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}
