package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/metrics"
)

func statsCmd() *cobra.Command {
	var (
		outputJSON  bool
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("stats: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			st := j.Summary()
			w := cmd.OutOrStdout()
			if outputJSON {
				if showMetrics {
					return printJSON(w, map[string]any{"stats": st, "metrics": metrics.Snapshot()})
				}
				return printJSON(w, st)
			}

			fmt.Fprintf(w, "Journal:   %s\n", j.Variant().Title)
			fmt.Fprintf(w, "Entries:   %d\n", st.TotalEntries)
			fmt.Fprintf(w, "Favorites: %d\n", st.Favorites)
			if j.Variant().Streaks {
				fmt.Fprintf(w, "Streak:    %d (best %d)\n", st.CurrentStreak, st.MaxStreak)
			}
			if st.MostFrequentTag != "" {
				fmt.Fprintf(w, "Top tag:   %s (%d)\n", st.MostFrequentTag, st.MostFrequentCount)
			}

			if len(st.ByTag) > 0 {
				fmt.Fprintln(w, "\nBy tag:")
				tags := make([]string, 0, len(st.ByTag))
				for t := range st.ByTag {
					tags = append(tags, t)
				}
				sort.Slice(tags, func(a, b int) bool {
					if st.ByTag[tags[a]] != st.ByTag[tags[b]] {
						return st.ByTag[tags[a]] > st.ByTag[tags[b]]
					}
					return tags[a] < tags[b]
				})
				for _, t := range tags {
					fmt.Fprintf(w, "  %-16s %d\n", t, st.ByTag[t])
				}
			}

			if len(st.Monthly) > 0 {
				fmt.Fprintln(w, "\nBy month:")
				for _, m := range st.Monthly {
					fmt.Fprintf(w, "  %s  %d\n", m.Label, m.Count)
				}
			}

			if showMetrics {
				fmt.Fprintln(w, "\nMetrics:")
				snap := metrics.Snapshot()
				names := make([]string, 0, len(snap))
				for name := range snap {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(w, "  %-18s %d\n", name, snap[name])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "also print this process's operation counters")
	return cmd
}
