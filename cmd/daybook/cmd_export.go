package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/journal"
	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/transfer"
	"github.com/ajitpratap0/daybook/internal/validate"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries to JSON, CSV or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("export: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			entries := j.Filtered(journal.Query{Order: models.SortOldestFirst})

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, createErr := os.Create(output)
				if createErr != nil {
					return fmt.Errorf("export: creating output file: %w", createErr)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err = transfer.Export(w, entries, transfer.ParseFormat(format)); err != nil {
				return err
			}

			if output != "" && output != "-" {
				fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n", len(entries), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format ("+formatsString(transfer.ExportFormats)+")")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		filePath string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import entries from a JSON, JSONL or YAML file",
		Long: `Import entries from a JSON array, JSONL (one entry per line) or YAML sequence.

Entries without any main text, or that fail validation for the current
journal, are skipped. Use - as the file path to read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			var r io.Reader = cmd.InOrStdin()
			if filePath != "" && filePath != "-" {
				f, openErr := os.Open(filePath)
				if openErr != nil {
					return fmt.Errorf("import: opening file: %w", openErr)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			entries, err := transfer.Import(r, transfer.ParseFormat(format))
			if err != nil {
				return err
			}

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("import: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			now := j.Now().In(j.Location())
			var imported, skipped int
			for i := range entries {
				e := entries[i]
				if summaryLine(j.Variant(), &e) == "" {
					skipped++
					continue
				}
				if e.Date.IsZero() {
					e.Date = now
				}
				if validErr := validate.Entry(j.Variant(), e, now); validErr != nil {
					logger.Warn("import: skipping entry", "id", e.ID, "error", validErr)
					skipped++
					continue
				}
				if _, exists := j.Get(e.ID); exists && e.ID != "" {
					if j.Update(ctx, e) {
						imported++
					} else {
						skipped++
					}
					continue
				}
				j.Add(ctx, e)
				imported++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d skipped)\n", imported, skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "-", "path to input file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "json", "input format ("+formatsString(transfer.ImportFormats)+")")
	return cmd
}

// formatsString lists formats for help output.
func formatsString(formats []transfer.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}
