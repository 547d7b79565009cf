package main

import (
	"github.com/spf13/cobra"
)

func newGenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gen [patterns]",
		Short: "Generate helpers for every marked union",
		Long: `Loads the packages matching patterns (default: the configured patterns,
./... unless set), validates every marked union and writes its artifacts.
Artifacts of unions that disappeared are removed. Exits with status 1 when
any error diagnostic was reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			diags, err := a.generate(cmd.Context(), args)
			if err != nil {
				return err
			}

			if diags.HasErrors() {
				return &ExitError{Code: 1}
			}

			return nil
		},
	}
}
