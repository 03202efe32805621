package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tmuxhost "github.com/carlstedt1/auto-close-tabs/internal/adapters/host/tmux"
	tomlrepo "github.com/carlstedt1/auto-close-tabs/internal/adapters/repo/toml"
	filesink "github.com/carlstedt1/auto-close-tabs/internal/adapters/sink/file"
	"github.com/carlstedt1/auto-close-tabs/internal/application"
	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	settingsRepo *tomlrepo.Repository
	stateRepo    *tomlrepo.StateRepository
	workspace    ports.Workspace
	tracker      *application.ActivityTracker
	scope        *application.ScopeFilter
	history      *application.HistoryLog
	sweeper      *application.Sweeper
	clock        ports.Clock
	logger       *slog.Logger
}

func wireApp() (*app, error) {
	logger := newLogger()

	settingsRepo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	stateRepo, err := tomlrepo.NewStateRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	workspace := tmuxhost.NewWorkspace(nil, logger)
	tracker := application.NewActivityTracker()
	scope := application.NewScopeFilter(workspace, logger)
	history := application.NewHistoryLog(filesink.NewSink(), logger)
	clock := ports.SystemClock{}
	sweeper := application.NewSweeper(workspace, scope, tracker, history, clock, logger)

	return &app{
		settingsRepo: settingsRepo,
		stateRepo:    stateRepo,
		workspace:    workspace,
		tracker:      tracker,
		scope:        scope,
		history:      history,
		sweeper:      sweeper,
		clock:        clock,
		logger:       logger,
	}, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch envOrDefault("ACT_LOG_LEVEL", "") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// hydrate seeds the tracker and history log from the persisted state
// so grace periods and the log survive between invocations. A fresh
// install hydrates from an empty state.
func (a *app) hydrate(ctx context.Context) error {
	state, err := a.stateRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	a.tracker.Seed(state.LastActivity)
	a.history.Restore(state.History)

	return nil
}

func (a *app) persist(ctx context.Context) error {
	state := domain.PersistedState{
		LastActivity: a.tracker.Export(),
		History:      a.history.Entries(),
	}
	if err := a.stateRepo.Save(ctx, state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	return nil
}
