package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/variants"
)

var now = time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)

func lookup(t *testing.T, name string) models.Variant {
	t.Helper()
	v, ok := variants.Lookup(name)
	require.True(t, ok)
	return v
}

func TestEntry_Valid(t *testing.T) {
	e := models.Entry{
		Date:   now,
		Fields: map[string]string{"title": "Flying dream", "mood": "calm"},
		Tags:   []string{"vivid", "new tag"},
	}
	assert.NoError(t, Entry(lookup(t, "dreams"), e, now))
}

func TestEntry_EmptyText(t *testing.T) {
	v := lookup(t, "dreams")
	err := Entry(v, models.Entry{Date: now}, now)
	assert.ErrorIs(t, err, ErrEmptyText)

	err = Entry(v, models.Entry{Date: now, Fields: map[string]string{"title": "  ", "mood": "happy"}}, now)
	assert.ErrorIs(t, err, ErrEmptyText, "secondary fields do not count")
}

func TestEntry_UnknownField(t *testing.T) {
	e := models.Entry{Date: now, Fields: map[string]string{"title": "x", "weather": "rain"}}
	assert.ErrorIs(t, Entry(lookup(t, "dreams"), e, now), ErrUnknownField)
}

func TestEntry_SingleTag(t *testing.T) {
	v := lookup(t, "outfits")
	base := models.Entry{Date: now, Fields: map[string]string{"description": "coat"}}

	ok := base
	ok.Tags = []string{"winter"}
	assert.NoError(t, Entry(v, ok, now))

	two := base
	two.Tags = []string{"Winter", "Autumn"}
	assert.ErrorIs(t, Entry(v, two, now), ErrInvalidTag)

	unknown := base
	unknown.Tags = []string{"Monsoon"}
	assert.ErrorIs(t, Entry(v, unknown, now), ErrInvalidTag)
}

func TestEntry_FutureDate(t *testing.T) {
	v := lookup(t, "dreams")
	e := models.Entry{Fields: map[string]string{"title": "x"}}

	e.Date = now.Add(time.Hour) // still today
	assert.NoError(t, Entry(v, e, now))

	e.Date = now.AddDate(0, 0, 1)
	assert.ErrorIs(t, Entry(v, e, now), ErrFutureDate)

	tasks := lookup(t, "tasks")
	task := models.Entry{Date: now.AddDate(0, 0, 7), Fields: map[string]string{"title": "exam prep"}}
	assert.NoError(t, Entry(tasks, task, now), "tasks may be planned ahead")
}

func TestTagName(t *testing.T) {
	assert.NoError(t, TagName(" flying "))
	assert.ErrorIs(t, TagName("   "), ErrInvalidTag)
	assert.ErrorIs(t, TagName("a,b"), ErrInvalidTag)
	assert.NoError(t, TagName(strings.Repeat("é", MaxTagLength)))
	assert.ErrorIs(t, TagName(strings.Repeat("x", MaxTagLength+1)), ErrInvalidTag)
}
