package cmd

import (
	"bufio"
	"fmt"
	"strings"

	historyrender "github.com/carlstedt1/auto-close-tabs/internal/adapters/render/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the eviction history log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.hydrate(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), historyrender.Render(app.history.List()))
			return err
		},
	}

	cmd.AddCommand(
		newHistoryClearCmd(app),
		newHistoryExportCmd(app),
	)

	return cmd
}

func newHistoryClearCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the in-memory history log (the mirror file is kept)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := app.hydrate(ctx); err != nil {
				return err
			}

			count := app.history.Len()
			if count == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "History is already empty.")
				return err
			}

			if !yes {
				confirmed, err := confirm(cmd, fmt.Sprintf("Clear %d history entries? [y/N]: ", count))
				if err != nil {
					return err
				}
				if !confirmed {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return err
				}
			}

			app.history.Clear()
			if err := app.persist(ctx); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries.\n", count)
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func newHistoryExportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Dump the history log as plain text, grouped by date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.hydrate(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprint(cmd.OutOrStdout(), app.history.ExportText())
			return err
		},
	}
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if _, err := fmt.Fprint(cmd.OutOrStdout(), prompt); err != nil {
		return false, err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false, nil
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
