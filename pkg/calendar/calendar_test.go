package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameDay_UsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 23:30 UTC on March 1 is 01:30 on March 2 in UTC+2.
	a := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	b := time.Date(2024, 3, 2, 9, 0, 0, 0, loc)

	assert.True(t, SameDay(a, b, loc))
	assert.False(t, SameDay(a, b, time.UTC))
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
	c := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameMonth(a, b, time.UTC))
	assert.False(t, SameMonth(a, c, time.UTC), "same month in another year")
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// DST starts on 2024-03-31 in Berlin; that day has 23 hours.
	a := time.Date(2024, 3, 30, 12, 0, 0, 0, loc)
	b := time.Date(2024, 4, 1, 0, 30, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(a, b, loc))
	assert.Equal(t, -2, DaysBetween(b, a, loc))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 5, 6, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), StartOfDay(ts, time.UTC))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "2024-03", MonthLabel(2024, time.March))
	assert.Equal(t, "0999-12", MonthLabel(999, time.December))
}

func TestParseDayAndMonth(t *testing.T) {
	d, err := ParseDay("2024-03-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	m, err := ParseMonth("2024-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.February, m.Month())

	_, err = ParseDay("03/01/2024", time.UTC)
	assert.Error(t, err)
	_, err = ParseMonth("2024-13", time.UTC)
	assert.Error(t, err)
}
