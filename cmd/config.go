package cmd

import (
	"fmt"
	"strconv"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settingsRepo.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enabled                  = %t\n", settings.Enabled)
			fmt.Fprintf(out, "inactive_timeout_minutes = %d\n", settings.InactiveTimeoutMinutes)
			fmt.Fprintf(out, "check_interval_seconds   = %d\n", settings.CheckIntervalSeconds)
			fmt.Fprintf(out, "log_history              = %t\n", settings.LogHistory)
			fmt.Fprintf(out, "log_to_file              = %t\n", settings.LogToFile)
			fmt.Fprintf(out, "log_file_path            = %s\n", settings.LogFilePath)
			fmt.Fprintf(out, "max_history_entries      = %d\n", settings.MaxHistoryEntries)

			return nil
		},
	}
}

func newConfigSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			settings, err := app.settingsRepo.Load(ctx)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			updated, err := applySetting(settings, args[0], args[1])
			if err != nil {
				return err
			}

			// Save validates; an invalid value leaves the file as-is.
			if err := app.settingsRepo.Save(ctx, updated); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return err
		},
	}
}

func applySetting(settings domain.Settings, key, value string) (domain.Settings, error) {
	switch key {
	case "enabled":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return settings, fmt.Errorf("parse %s: %w", key, err)
		}
		settings.Enabled = parsed
	case "inactive_timeout_minutes":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return settings, fmt.Errorf("parse %s: %w", key, err)
		}
		settings.InactiveTimeoutMinutes = parsed
	case "check_interval_seconds":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return settings, fmt.Errorf("parse %s: %w", key, err)
		}
		settings.CheckIntervalSeconds = parsed
	case "log_history":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return settings, fmt.Errorf("parse %s: %w", key, err)
		}
		settings.LogHistory = parsed
	case "log_to_file":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return settings, fmt.Errorf("parse %s: %w", key, err)
		}
		settings.LogToFile = parsed
	case "log_file_path":
		settings.LogFilePath = value
	case "max_history_entries":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return settings, fmt.Errorf("parse %s: %w", key, err)
		}
		settings.MaxHistoryEntries = parsed
	default:
		return settings, fmt.Errorf("unknown setting %q", key)
	}

	return settings, nil
}
