package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/validate"
)

func tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List or register tags",
	}
	cmd.AddCommand(tagsListCmd(), tagsAddCmd())
	return cmd
}

func tagsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known tags with how many entries carry each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("tags list: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			counts := j.AggregateTagCounts()
			for _, t := range j.AllTags() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d\n", t, counts[t])
			}
			return nil
		},
	}
}

func tagsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Register a custom tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			if err := validate.TagName(args[0]); err != nil {
				return fmt.Errorf("tags add: %w", err)
			}

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("tags add: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			if j.Variant().TagMode != models.TagModeFree {
				return fmt.Errorf("tags add: journal %s only uses its built-in tags", j.Variant().Name)
			}
			if !j.AddCustomTag(ctx, args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Tag %q already exists\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added tag %q\n", args[0])
			return nil
		},
	}
}
