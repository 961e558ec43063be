// Package calendar provides local-calendar day and month arithmetic.
//
// All helpers interpret timestamps in the supplied location, so two instants
// are on the "same day" when their wall-clock dates match there, not when they
// are less than 24 hours apart.
package calendar

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayNumber(a, loc) == DayNumber(b, loc)
}

// SameMonth reports whether a and b fall in the same calendar month and year in loc.
func SameMonth(a, b time.Time, loc *time.Location) bool {
	ay, am := MonthOf(a, loc)
	by, bm := MonthOf(b, loc)
	return ay == by && am == bm
}

// MonthOf returns the calendar year and month of t in loc.
func MonthOf(t time.Time, loc *time.Location) (int, time.Month) {
	y, m, _ := t.In(loc).Date()
	return y, m
}

// DayNumber maps t's calendar date in loc to a monotonically increasing day index.
// Consecutive calendar days differ by exactly one regardless of DST transitions.
func DayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// DaysBetween returns the number of calendar days from a to b in loc.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	return int(DayNumber(b, loc) - DayNumber(a, loc))
}

// MonthLabel formats a year and month as "YYYY-MM".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseDay parses a "YYYY-MM-DD" date as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a "YYYY-MM" month as midnight of its first day in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return t, nil
}
