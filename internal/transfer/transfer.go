// Package transfer reads and writes journal entries in portable formats.
package transfer

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/daybook/internal/models"
)

// Format names an export or import encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

// ExportFormats are the formats accepted by Export.
var ExportFormats = []Format{FormatJSON, FormatCSV, FormatYAML}

// ImportFormats are the formats accepted by Import.
var ImportFormats = []Format{FormatJSON, FormatJSONL, FormatYAML}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) Format {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		return FormatYAML
	}
	return f
}

// Export writes entries to w.
//
// CSV output has fixed columns followed by one column per text field seen
// in any entry, sorted by name. Tags are joined with "|".
func Export(w io.Writer, entries []models.Entry, format Format) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("export: encoding JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("export: encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("export: flushing YAML: %w", err)
		}
	case FormatCSV:
		return exportCSV(w, entries)
	default:
		return fmt.Errorf("export: unsupported format %q (use json, csv or yaml)", format)
	}
	return nil
}

func exportCSV(w io.Writer, entries []models.Entry) error {
	fieldSet := make(map[string]bool)
	for i := range entries {
		for name := range entries[i].Fields {
			fieldSet[name] = true
		}
	}
	fields := make([]string, 0, len(fieldSet))
	for name := range fieldSet {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	cw := csv.NewWriter(w)
	headers := append([]string{"id", "date", "tags", "is_favorite", "favorited_at", "created_at", "updated_at"}, fields...)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("export: writing CSV header: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		favoritedAt := ""
		if e.FavoritedAt != nil {
			favoritedAt = e.FavoritedAt.Format(time.RFC3339)
		}
		row := []string{
			e.ID,
			e.Date.Format(time.RFC3339),
			strings.Join(e.Tags, "|"),
			strconv.FormatBool(e.IsFavorite),
			favoritedAt,
			e.CreatedAt.Format(time.RFC3339),
			e.UpdatedAt.Format(time.RFC3339),
		}
		for _, name := range fields {
			row = append(row, e.Field(name))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flushing CSV: %w", err)
	}
	return nil
}

// Import decodes entries from r. JSON expects an array, JSONL one object per
// line, YAML a sequence.
func Import(r io.Reader, format Format) ([]models.Entry, error) {
	var entries []models.Entry
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("import: decoding JSON: %w", err)
		}
	case FormatJSONL:
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			var e models.Entry
			if err := json.Unmarshal([]byte(text), &e); err != nil {
				return nil, fmt.Errorf("import: decoding JSONL line %d: %w", line, err)
			}
			entries = append(entries, e)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("import: reading JSONL: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
			return nil, fmt.Errorf("import: decoding YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("import: unsupported format %q (use json, jsonl or yaml)", format)
	}
	return entries, nil
}
