package cmd

import (
	"encoding/json"
	"fmt"

	statusrender "github.com/carlstedt1/auto-close-tabs/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a live snapshot of every managed pane",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := app.settingsRepo.Load(ctx)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}

			statuses, err := app.sweeper.Snapshot(ctx, settings)
			if err != nil {
				return fmt.Errorf("snapshot panes: %w", err)
			}

			// A snapshot seeds first-seen panes; keep those records.
			if err := app.persist(ctx); err != nil {
				app.logger.Warn("persist state after snapshot failed", "error", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), statusrender.Render(statuses))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")

	return cmd
}
