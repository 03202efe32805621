package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
)

// Manager owns the periodic sweep schedule for one pane set. All work
// happens on a single loop, so sweeps are serialized: a sweep runs to
// completion, including the durable-mirror writes it triggers, before
// the next tick is honored. Settings changes restart the ticker with
// the new interval rather than mutating a running one.
type Manager struct {
	sweeper *Sweeper
	tracker *ActivityTracker
	scope   *ScopeFilter
	history *HistoryLog
	source  ports.ActivitySource
	state   ports.StateRepository
	clock   ports.Clock
	logger  *slog.Logger

	settings domain.Settings
	applyCh  chan domain.Settings
}

func NewManager(sweeper *Sweeper, tracker *ActivityTracker, scope *ScopeFilter, history *HistoryLog, source ports.ActivitySource, state ports.StateRepository, clock ports.Clock, logger *slog.Logger, settings domain.Settings) *Manager {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		sweeper:  sweeper,
		tracker:  tracker,
		scope:    scope,
		history:  history,
		source:   source,
		state:    state,
		clock:    clock,
		logger:   logger,
		settings: settings,
		applyCh:  make(chan domain.Settings),
	}
}

// ApplySettings hands a new snapshot to the running loop. Invalid
// snapshots are rejected there and the previous valid ones retained.
// Blocks until the loop picks it up or ctx is done.
func (m *Manager) ApplySettings(ctx context.Context, settings domain.Settings) error {
	select {
	case m.applyCh <- settings:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the manager until ctx is cancelled. It subscribes to the
// host's activity events, releases the subscription on shutdown, and
// lets an in-flight sweep finish before returning.
func (m *Manager) Run(ctx context.Context) error {
	events, release, err := m.source.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer release()

	var (
		ticker *time.Ticker
		tickC  <-chan time.Time
	)
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	startTicker := func() {
		stopTicker()
		if !m.settings.Enabled {
			return
		}
		ticker = time.NewTicker(m.settings.CheckInterval())
		tickC = ticker.C
	}

	startTicker()
	defer stopTicker()

	m.logger.Info("manager started", "enabled", m.settings.Enabled, "interval", m.settings.CheckInterval(), "timeout", m.settings.InactiveTimeout())

	for {
		select {
		case <-ctx.Done():
			m.persist(context.WithoutCancel(ctx))
			m.logger.Info("manager stopped")
			return nil

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			m.handleActivity(ctx, event)

		case settings := <-m.applyCh:
			if err := settings.Validate(); err != nil {
				m.logger.Warn("rejected settings change", "error", err)
				continue
			}
			m.settings = settings
			startTicker()
			m.logger.Info("settings applied", "enabled", settings.Enabled, "interval", settings.CheckInterval(), "timeout", settings.InactiveTimeout())

		case <-tickC:
			if _, err := m.sweeper.Sweep(ctx, m.settings); err != nil {
				m.logger.Warn("scheduled sweep failed", "error", err)
				continue
			}
			m.persist(ctx)
		}
	}
}

// persist saves tracker records and history entries so a restart keeps
// grace periods and the log. Failures are logged, never fatal.
func (m *Manager) persist(ctx context.Context) {
	if m.state == nil {
		return
	}

	state := domain.PersistedState{
		LastActivity: m.tracker.Export(),
		History:      m.history.Entries(),
	}
	if err := m.state.Save(ctx, state); err != nil {
		m.logger.Warn("persist state failed", "error", err)
	}
}

// handleActivity coalesces every host signal into a touch. Only panes
// that pass the scope filter are tracked.
func (m *Manager) handleActivity(ctx context.Context, event domain.ActivityEvent) {
	if !m.scope.IsManaged(ctx, event.PaneID) {
		return
	}

	at := event.At
	if at.IsZero() {
		at = m.clock.Now()
	}
	m.tracker.Touch(event.PaneID, at)
}
