package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/store"
	"github.com/ajitpratap0/daybook/internal/variants"
)

// EnvPrefix is prepended to environment variable overrides, e.g. DAYBOOK_DATA_DIR.
const EnvPrefix = "DAYBOOK"

// Config holds all configuration for daybook.
type Config struct {
	Data     DataConfig                `mapstructure:"data"`
	Journal  JournalConfig             `mapstructure:"journal"`
	Logging  LoggingConfig             `mapstructure:"logging"`
	Variants map[string]models.Variant `mapstructure:"variants"`
}

// DataConfig holds persistence settings.
type DataConfig struct {
	Dir     string     `mapstructure:"dir"`
	Backend store.Kind `mapstructure:"backend"`
}

// JournalConfig selects which journal to open and how its calendar works.
type JournalConfig struct {
	Variant  string `mapstructure:"variant"`
	Timezone string `mapstructure:"timezone"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. When path is
// empty, config.yaml is looked up in ~/.daybook and the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data.dir", filepath.Join(homeDir(), ".daybook", "data"))
	v.SetDefault("data.backend", string(store.KindJSON))

	v.SetDefault("journal.variant", variants.Default)
	v.SetDefault("journal.timezone", "Local")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".daybook"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("data.dir", "DAYBOOK_DATA_DIR")
	_ = v.BindEnv("data.backend", "DAYBOOK_DATA_BACKEND")
	_ = v.BindEnv("journal.variant", "DAYBOOK_VARIANT", "DAYBOOK_JOURNAL_VARIANT")
	_ = v.BindEnv("journal.timezone", "DAYBOOK_TIMEZONE", "DAYBOOK_JOURNAL_TIMEZONE")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file: defaults and env vars only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if !c.Data.Backend.IsValid() || c.Data.Backend == store.KindMemory {
		return fmt.Errorf("data.backend %q must be json or sqlite", c.Data.Backend)
	}
	if c.Journal.Variant == "" {
		return fmt.Errorf("journal.variant must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("journal.timezone: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}
	for name, v := range c.Variants {
		if _, err := variants.Resolve(name, map[string]models.Variant{name: v}); err != nil {
			return fmt.Errorf("variants.%s: %w", name, err)
		}
	}
	return nil
}

// Location returns the calendar location named by journal.timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Journal.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Journal.Timezone)
	}
}

// Variant resolves the configured journal variant, letting variants defined in
// config override the presets.
func (c *Config) Variant() (models.Variant, error) {
	return variants.Resolve(c.Journal.Variant, c.Variants)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
