package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"union-generator/internal/watch"
)

func newWatchCommand(a *app) *cobra.Command {
	var ignore []string

	cmd := &cobra.Command{
		Use:   "watch [patterns]",
		Short: "Regenerate whenever Go sources change",
		Long: `Runs gen once, then again each time a .go file under the working
directory changes. Generated files never trigger a pass. Renders of unchanged
unions are reused between passes. Stops on interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.root()
			if err != nil {
				return err
			}

			regenerate := func(ctx context.Context, changed []string) {
				if len(changed) > 0 {
					a.log.Info("change detected", zap.Strings("files", changed))
				}

				if _, err := a.generate(ctx, args); err != nil {
					a.log.Error("generation failed", zap.Error(err))
				}
			}

			w, err := watch.New(watch.Config{
				BaseDir:  root,
				Ignore:   ignore,
				Debounce: a.cfg.Watch.Debounce,
				Logger:   a.log,
				OnChange: func(ctx context.Context, changed []string) error {
					regenerate(ctx, changed)
					return nil
				},
			})
			if err != nil {
				return err
			}

			regenerate(cmd.Context(), nil)
			a.log.Info("watching for changes", zap.String("dir", root))

			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "additional doublestar patterns to ignore")

	return cmd
}
