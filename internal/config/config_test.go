package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/store"
)

func validCfg() *Config {
	return &Config{
		Data:    DataConfig{Dir: "/tmp/daybook", Backend: store.KindJSON},
		Journal: JournalConfig{Variant: "dreams", Timezone: "UTC"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validCfg().Validate())
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]func(*Config){
		"data.dir":         func(c *Config) { c.Data.Dir = "" },
		"data.backend":     func(c *Config) { c.Data.Backend = "postgres" },
		"journal.variant":  func(c *Config) { c.Journal.Variant = "" },
		"journal.timezone": func(c *Config) { c.Journal.Timezone = "Mars/Olympus" },
		"logging.level":    func(c *Config) { c.Logging.Level = "loud" },
		"logging.format":   func(c *Config) { c.Logging.Format = "xml" },
		"variants.broken":  func(c *Config) { c.Variants = map[string]models.Variant{"broken": {}} },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cfg := validCfg()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestValidate_MemoryBackendRejected(t *testing.T) {
	cfg := validCfg()
	cfg.Data.Backend = store.KindMemory
	assert.Error(t, cfg.Validate())
}

func TestLocation(t *testing.T) {
	cfg := validCfg()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Journal.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestVariant_CustomOverridesPreset(t *testing.T) {
	cfg := validCfg()
	cfg.Journal.Variant = "Plants"
	cfg.Variants = map[string]models.Variant{
		"plants": {PrimaryFields: []string{"plant", "care"}, OnePerDay: true},
	}
	v, err := cfg.Variant()
	require.NoError(t, err)
	assert.Equal(t, "plants", v.Name)
	assert.Equal(t, models.TagModeFree, v.TagMode)
	assert.True(t, v.OnePerDay)

	cfg.Journal.Variant = "nope"
	_, err = cfg.Variant()
	assert.Error(t, err)
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("DAYBOOK_VARIANT", "gratitude")
	t.Setenv("DAYBOOK_LOGGING_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gratitude", cfg.Journal.Variant)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, store.KindJSON, cfg.Data.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "daybook.yaml")
	body := `data:
  dir: ` + dir + `
  backend: sqlite
journal:
  variant: plants
  timezone: UTC
variants:
  plants:
    title: Plant Care
    primary_fields: [plant, care]
    tag_mode: single
    builtin_tags: [Water, Repot]
    streaks: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.KindSQLite, cfg.Data.Backend)

	v, err := cfg.Variant()
	require.NoError(t, err)
	assert.Equal(t, "Plant Care", v.Title)
	assert.Equal(t, models.TagModeSingle, v.TagMode)
	assert.Equal(t, []string{"Water", "Repot"}, v.BuiltinTags)
	assert.True(t, v.Streaks)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
