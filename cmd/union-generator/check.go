package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"union-generator/internal/gen"
)

func newCheckCommand(a *app) *cobra.Command {
	var stale bool

	cmd := &cobra.Command{
		Use:   "check [patterns]",
		Short: "Report diagnostics without writing anything",
		Long: `Runs a generation pass and prints its diagnostics. With --stale, every
artifact is also compared with the file on disk, which makes check suitable
for CI. Exits with status 1 on error diagnostics or stale artifacts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pass(cmd.Context(), args)
			if err != nil {
				return err
			}

			diags := res.Diagnostics()
			a.printDiagnostics(diags)

			failed := diags.HasErrors()

			if stale {
				n := 0

				for _, art := range res.Artifacts() {
					out, err := gen.Stale(art)
					if err != nil {
						return err
					}

					if out {
						fmt.Fprintf(a.stdout, "%s: stale, run %s gen\n", art.Path(), gen.Tool)
						n++
					}
				}

				a.log.Debug("staleness checked", zap.Int("stale", n))
				failed = failed || n > 0
			}

			if failed {
				return &ExitError{Code: 1}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&stale, "stale", false, "fail when an artifact on disk is out of date")

	return cmd
}
