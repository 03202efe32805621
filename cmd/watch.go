package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tmuxhost "github.com/carlstedt1/auto-close-tabs/internal/adapters/host/tmux"
	"github.com/carlstedt1/auto-close-tabs/internal/application"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var pollInterval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the periodic sweeper until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tmuxhost.IsAvailable(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			settings, err := app.settingsRepo.Load(ctx)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}

			workspace, ok := app.workspace.(*tmuxhost.Workspace)
			if !ok {
				return fmt.Errorf("watch requires the tmux workspace adapter, got %T", app.workspace)
			}
			poller := tmuxhost.NewActivityPoller(workspace, pollInterval, app.clock, app.logger)

			manager := application.NewManager(
				app.sweeper, app.tracker, app.scope, app.history,
				poller, app.stateRepo, app.clock, app.logger, settings,
			)

			go watchSettingsFile(ctx, app, manager)

			return manager.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&pollInterval, "poll-interval", time.Second, "how often to sample tmux for activity")

	return cmd
}

// watchSettingsFile hot-reloads the settings file. The repository
// replaces the file atomically via rename, so the directory is watched
// rather than the path itself.
func watchSettingsFile(ctx context.Context, app *app, manager *application.Manager) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		app.logger.Warn("settings watcher unavailable", "error", err)
		return
	}
	defer watcher.Close()

	settingsPath := app.settingsRepo.Path()
	if err := watcher.Add(filepath.Dir(settingsPath)); err != nil {
		app.logger.Warn("watch settings directory failed", "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != settingsPath || !event.Op.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}

			settings, err := app.settingsRepo.Load(ctx)
			if err != nil {
				app.logger.Warn("reload settings failed", "error", err)
				continue
			}
			if err := manager.ApplySettings(ctx, settings); err != nil {
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			app.logger.Warn("settings watcher error", "error", err)
		}
	}
}
