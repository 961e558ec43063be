package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func onboardCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Mark the journal's onboarding as complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("onboard: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			if !status {
				j.CompleteOnboarding(ctx)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Onboarding complete: %t\n", j.OnboardingComplete())
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "only report whether onboarding was completed")
	return cmd
}
