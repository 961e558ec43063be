package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/journal"
	"github.com/ajitpratap0/daybook/internal/store"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the journal file and print a summary whenever it changes",
		Long: `Watches the JSON journal file for changes made by other processes or sync
tools, reloads the journal and prints its entry count. Runs until interrupted.
Only the json backend can be watched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("watch: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			fb, ok := backend.(*store.FileBackend)
			if !ok {
				return fmt.Errorf("watch: data.backend %s cannot be watched, use json", cfg.Data.Backend)
			}

			w, err := store.NewWatcher(fb, logger)
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			defer func() { _ = w.Close() }()

			cancel := j.Subscribe(func(c journal.Change) {
				if c.Kind != journal.ChangeReloaded {
					return
				}
				st := j.Summary()
				fmt.Fprintf(cmd.OutOrStdout(), "%s reloaded: %d entries, %d favorites\n",
					j.Now().Format("15:04:05"), st.TotalEntries, st.Favorites)
			})
			defer cancel()

			logger.Info("watching journal", "path", fb.Path(), "entries", j.Len())
			w.Run(ctx, func() {
				if reloadErr := j.Reload(ctx); reloadErr != nil {
					logger.Warn("watch: reload failed", "error", reloadErr)
				}
			})
			return nil
		},
	}
}
