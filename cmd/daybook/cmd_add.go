package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/validate"
)

func addCmd() *cobra.Command {
	var (
		fieldFlags []string
		date       string
		tags       string
		favorite   bool
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a journal entry",
		Long: `Add a journal entry. Positional text fills the variant's first text field;
use --field name=value for the others.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("add: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			v := j.Variant()
			fields, err := parseFields(fieldFlags)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			if len(args) == 1 {
				fields[v.PrimaryFields[0]] = args[0]
			}

			now := j.Now().In(j.Location())
			when, err := parseDate(date, now, j.Location())
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}

			e := models.Entry{
				Date:       when,
				Fields:     fields,
				Tags:       parseTags(tags),
				IsFavorite: favorite,
			}
			if err = validate.Entry(v, e, now); err != nil {
				return fmt.Errorf("add: %w", err)
			}

			replacing := v.OnePerDay && len(j.EntriesForDate(when)) > 0
			stored := j.Add(ctx, e)
			if replacing {
				fmt.Fprintf(cmd.OutOrStdout(), "Replaced %s entry %s for %s\n", v.Name, stored.ID, when.Format("2006-01-02"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s entry %s\n", v.Name, stored.ID)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&fieldFlags, "field", "f", nil, "text field as name=value (repeatable)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "entry date YYYY-MM-DD, today or yesterday (default: now)")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "mark as favorite")
	return cmd
}

func editCmd() *cobra.Command {
	var (
		fieldFlags []string
		date       string
		tags       string
	)

	cmd := &cobra.Command{
		Use:   "edit [entry-id]",
		Short: "Change an entry's fields, date or tags",
		Long: `Change an entry. Only the given flags are applied; --field name= removes a field
and --tags "" clears the tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("edit: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			e, ok := j.Get(args[0])
			if !ok {
				return fmt.Errorf("edit: entry %q not found", args[0])
			}

			fields, err := parseFields(fieldFlags)
			if err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			if e.Fields == nil {
				e.Fields = make(map[string]string)
			}
			for name, value := range fields {
				if strings.TrimSpace(value) == "" {
					delete(e.Fields, name)
					continue
				}
				e.Fields[name] = value
			}
			if cmd.Flags().Changed("tags") {
				e.Tags = parseTags(tags)
			}

			now := j.Now().In(j.Location())
			if cmd.Flags().Changed("date") {
				if e.Date, err = parseDate(date, now, j.Location()); err != nil {
					return fmt.Errorf("edit: %w", err)
				}
			}

			if err = validate.Entry(j.Variant(), e, now); err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			if !j.Update(ctx, e) {
				return fmt.Errorf("edit: entry %s was not updated (another entry already exists for that day?)", e.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&fieldFlags, "field", "f", nil, "text field as name=value (repeatable)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new entry date YYYY-MM-DD")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags replacing the current ones")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [entry-id]",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("delete: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			if !j.Delete(ctx, args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		},
	}
}

func favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "favorite [entry-id]",
		Aliases: []string{"fav"},
		Short:   "Toggle an entry's favorite flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("favorite: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			e, ok := j.ToggleFavorite(ctx, args[0])
			if !ok {
				return fmt.Errorf("favorite: entry %q not found", args[0])
			}
			if e.IsFavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "Entry %s is now a favorite\n", e.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Entry %s is no longer a favorite\n", e.ID)
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "get [entry-id]",
		Short: "Show a single entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("get: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			e, ok := j.Get(args[0])
			if !ok {
				return fmt.Errorf("get: entry %q not found", args[0])
			}
			if outputJSON {
				return printJSON(cmd.OutOrStdout(), e)
			}
			printEntry(cmd.OutOrStdout(), j.Variant(), &e, j.Location())
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}
