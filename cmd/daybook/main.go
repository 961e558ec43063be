package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/config"
	"github.com/ajitpratap0/daybook/internal/journal"
	"github.com/ajitpratap0/daybook/internal/store"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg         *config.Config
	configPath  string
	variantFlag string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "daybook",
		Short:   "daybook: dated journal entries with tags, favorites and streaks",
		Long:    "daybook keeps one local journal per variant (dreams, outfits, gratitude, ...) and answers list, calendar and statistics queries over it.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if variantFlag != "" {
				cfg.Journal.Variant = variantFlag
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.daybook/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&variantFlag, "variant", "V", "", "journal variant to open (overrides journal.variant)")

	rootCmd.AddCommand(
		addCmd(),
		editCmd(),
		deleteCmd(),
		favoriteCmd(),
		getCmd(),
		listCmd(),
		dayCmd(),
		monthCmd(),
		statsCmd(),
		tagsCmd(),
		exportCmd(),
		importCmd(),
		variantsCmd(),
		onboardCmd(),
		watchCmd(),
		mcpCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newBackend(variant string, logger *slog.Logger) (store.Backend, error) {
	return store.Open(cfg.Data.Backend, cfg.Data.Dir, variant, logger)
}

// openJournal resolves the configured variant and loads its journal. The
// caller closes the returned backend.
func openJournal(ctx context.Context, logger *slog.Logger) (*journal.Store, store.Backend, error) {
	variant, err := cfg.Variant()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("journal.timezone: %w", err)
	}
	backend, err := newBackend(variant.Name, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s backend: %w", cfg.Data.Backend, err)
	}
	j, err := journal.Open(ctx, variant, backend,
		journal.WithLogger(logger),
		journal.WithLocation(loc),
	)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	return j, backend, nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
