package transfer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/daybook/internal/models"
)

func sampleEntries() []models.Entry {
	fav := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	return []models.Entry{
		{
			ID:          "e1",
			Date:        time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC),
			Fields:      map[string]string{"title": "Flying dream", "description": "over, the sea"},
			Tags:        []string{"vivid", "flying"},
			IsFavorite:  true,
			FavoritedAt: &fav,
			CreatedAt:   time.Date(2024, 3, 1, 7, 5, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 3, 1, 7, 5, 0, 0, time.UTC),
		},
		{
			ID:        "e2",
			Date:      time.Date(2024, 3, 3, 7, 0, 0, 0, time.UTC),
			Fields:    map[string]string{"title": "Falling"},
			CreatedAt: time.Date(2024, 3, 3, 7, 5, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 3, 3, 7, 5, 0, 0, time.UTC),
		},
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, ParseFormat(" YML "))
	assert.Equal(t, FormatJSONL, ParseFormat("JSONL"))
}

func TestExportImport_JSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleEntries(), FormatJSON))

	got, err := Import(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), got)
}

func TestExportImport_YAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleEntries(), FormatYAML))
	assert.Contains(t, buf.String(), "title: Flying dream")

	got, err := Import(&buf, FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, []string{"vivid", "flying"}, got[0].Tags)
	assert.True(t, got[0].Date.Equal(sampleEntries()[0].Date))
}

func TestExport_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleEntries(), FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "date", "tags", "is_favorite", "favorited_at", "created_at", "updated_at", "description", "title"}, rows[0])
	assert.Equal(t, "vivid|flying", rows[1][2])
	assert.Equal(t, "true", rows[1][3])
	assert.Equal(t, "over, the sea", rows[1][7])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "Falling", rows[2][8])
}

func TestExport_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Export(&buf, sampleEntries(), "xml"))
}

func TestImport_JSONL(t *testing.T) {
	input := `{"id":"a","date":"2024-03-01T00:00:00Z","fields":{"title":"one"}}

{"id":"b","date":"2024-03-02T00:00:00Z","fields":{"title":"two"},"tags":["x"]}
`
	got, err := Import(strings.NewReader(input), FormatJSONL)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[1].Field("title"))
	assert.Equal(t, []string{"x"}, got[1].Tags)
}

func TestImport_JSONLBadLine(t *testing.T) {
	_, err := Import(strings.NewReader("{\"id\":\"a\"}\nnot json\n"), FormatJSONL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestImport_UnsupportedFormat(t *testing.T) {
	_, err := Import(strings.NewReader(""), FormatCSV)
	assert.Error(t, err)
}
