package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/variants"
)

func variantsCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the available journal variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := variants.Names()
			for name := range cfg.Variants {
				if _, preset := variants.Lookup(name); !preset {
					names = append(names, name)
				}
			}
			sort.Strings(names)

			all := make([]models.Variant, 0, len(names))
			for _, name := range names {
				v, err := variants.Resolve(name, cfg.Variants)
				if err != nil {
					return fmt.Errorf("variants: %w", err)
				}
				all = append(all, v)
			}

			if outputJSON {
				return printJSON(cmd.OutOrStdout(), all)
			}
			for i := range all {
				v := &all[i]
				marker := " "
				if strings.EqualFold(v.Name, cfg.Journal.Variant) {
					marker = "*"
				}
				var rules []string
				if v.OnePerDay {
					rules = append(rules, "one per day")
				}
				if v.NoFutureDates {
					rules = append(rules, "no future dates")
				}
				if v.Streaks {
					rules = append(rules, "streaks")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %-18s fields: %s  tags: %s",
					marker, v.Name, v.Title, strings.Join(v.Fields(), ","), v.TagMode)
				if len(rules) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  (%s)", strings.Join(rules, ", "))
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}
