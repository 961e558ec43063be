package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/journal"
	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/pkg/calendar"
)

func listCmd() *cobra.Command {
	var (
		search     string
		tags       string
		order      string
		favorites  bool
		limit      int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, optionally filtered by text and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			so := models.SortOrder(strings.ToLower(order))
			if !so.IsValid() {
				return fmt.Errorf("list: invalid --order %q: must be one of %s", order, validOrdersString())
			}

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("list: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			entries := j.Filtered(journal.Query{
				Search:        search,
				Tags:          parseTags(tags),
				Order:         so,
				FavoritesOnly: favorites,
				Limit:         limit,
			})

			if outputJSON {
				if entries == nil {
					entries = []models.Entry{}
				}
				return printJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
				return nil
			}
			printEntries(cmd.OutOrStdout(), j.Variant(), entries, j.Location())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags; entries with any of them match")
	cmd.Flags().StringVar(&order, "order", string(models.SortNewestFirst), "sort order ("+validOrdersString()+")")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorites")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results (0 = all)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}

func dayCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show the entries of one calendar day (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("day: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			d, err := parseDate(arg, j.Now(), j.Location())
			if err != nil {
				return fmt.Errorf("day: %w", err)
			}

			entries := j.EntriesForDate(d)
			if outputJSON {
				if entries == nil {
					entries = []models.Entry{}
				}
				return printJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries on %s.\n", d.Format("2006-01-02"))
				return nil
			}
			printEntries(cmd.OutOrStdout(), j.Variant(), entries, j.Location())
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}

func monthCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show a calendar month's entries grouped by day (default: this month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("month: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			m := j.Now().In(j.Location())
			if len(args) == 1 {
				if m, err = calendar.ParseMonth(args[0], j.Location()); err != nil {
					return fmt.Errorf("month: %w", err)
				}
			}

			entries := j.EntriesForMonth(m)
			if outputJSON {
				if entries == nil {
					entries = []models.Entry{}
				}
				return printJSON(cmd.OutOrStdout(), entries)
			}

			y, mon := calendar.MonthOf(m, j.Location())
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", calendar.MonthLabel(y, mon), len(entries))
			lastDay := ""
			for i := range entries {
				e := &entries[i]
				day := e.Date.In(j.Location()).Format("Mon 02")
				if day != lastDay {
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", day)
					lastDay = day
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", e.ID, truncate(summaryLine(j.Variant(), e), 70))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}

func validOrdersString() string {
	orders := make([]string, len(models.ValidSortOrders))
	for i, o := range models.ValidSortOrders {
		orders[i] = string(o)
	}
	return strings.Join(orders, "|")
}
