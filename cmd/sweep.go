package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/carlstedt1/auto-close-tabs/internal/application"
	"github.com/spf13/cobra"
)

func newSweepCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Close inactive panes now and show a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := app.settingsRepo.Load(ctx)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if !settings.Enabled {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "auto-close is disabled; enable it with `act config set enabled true`")
				return err
			}

			if err := app.hydrate(ctx); err != nil {
				return err
			}

			sweep := func() (application.SweepResult, error) {
				return app.sweeper.Sweep(ctx, settings)
			}

			var result application.SweepResult
			if !asJSON && isTerminal(os.Stdout) {
				result, err = runSweepWithSpinner(cmd, sweep)
			} else {
				result, err = sweep()
			}
			if err != nil {
				return err
			}

			if err := app.persist(ctx); err != nil {
				app.logger.Warn("persist state after sweep failed", "error", err)
			}

			return writeSweepOutput(cmd, result, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the evicted entries as JSON")

	return cmd
}

func writeSweepOutput(cmd *cobra.Command, result application.SweepResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Evicted)
	}

	out := cmd.OutOrStdout()
	if len(result.Evicted) == 0 {
		_, err := fmt.Fprintln(out, "Nothing to close.")
		return err
	}

	if _, err := fmt.Fprintf(out, "Closed %d pane(s):\n", len(result.Evicted)); err != nil {
		return err
	}
	for _, entry := range result.Evicted {
		if _, err := fmt.Fprintf(out, "  - %s (inactive for %.1f minutes)\n", entry.Title, entry.InactiveMinutes()); err != nil {
			return err
		}
	}
	if result.FailedCloses > 0 {
		if _, err := fmt.Fprintf(out, "%d pane(s) failed to close; see logs.\n", result.FailedCloses); err != nil {
			return err
		}
	}

	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
