package application

import (
	"context"
	"testing"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(workspace *fakeWorkspace, source *fakeActivitySource, state *fakeStateRepo, settings domain.Settings) (*Manager, *ActivityTracker) {
	clock := &fakeClock{now: time.Now()}
	tracker := NewActivityTracker()
	history := NewHistoryLog(nil, nil)
	scope := NewScopeFilter(workspace, nil)
	sweeper := NewSweeper(workspace, scope, tracker, history, clock, nil)
	manager := NewManager(sweeper, tracker, scope, history, source, state, clock, nil, settings)
	return manager, tracker
}

func TestManagerTouchesManagedPanesOnActivity(t *testing.T) {
	workspace := newFakeWorkspace(domain.Pane{ID: "main"}, domain.Pane{ID: "side"})
	workspace.roots["side"] = domain.RootSidePanel
	source := newFakeActivitySource()
	state := &fakeStateRepo{}

	settings := domain.DefaultSettings()
	manager, tracker := newTestManager(workspace, source, state, settings)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.Run(ctx) }()

	at := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	source.events <- domain.ActivityEvent{PaneID: "main", Kind: domain.ActivityFocus, At: at}
	source.events <- domain.ActivityEvent{PaneID: "side", Kind: domain.ActivityFocus, At: at}

	require.Eventually(t, func() bool {
		_, ok := tracker.LastActivity("main")
		return ok
	}, time.Second, 5*time.Millisecond)

	// Side-panel activity is never tracked.
	_, ok := tracker.LastActivity("side")
	assert.False(t, ok)

	cancel()
	require.NoError(t, <-done)
}

func TestManagerPersistsStateOnShutdown(t *testing.T) {
	workspace := newFakeWorkspace()
	source := newFakeActivitySource()
	state := &fakeStateRepo{}

	manager, tracker := newTestManager(workspace, source, state, domain.DefaultSettings())
	tracker.Touch("p1", time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)

	require.Equal(t, 1, state.saveCount())
	assert.Contains(t, state.state.LastActivity, domain.PaneID("p1"))
}

func TestManagerRejectsInvalidSettingsChange(t *testing.T) {
	workspace := newFakeWorkspace()
	source := newFakeActivitySource()
	state := &fakeStateRepo{}

	manager, _ := newTestManager(workspace, source, state, domain.DefaultSettings())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.Run(ctx) }()

	invalid := domain.DefaultSettings()
	invalid.CheckIntervalSeconds = 0
	require.NoError(t, manager.ApplySettings(ctx, invalid))

	// The loop survives the rejected snapshot and keeps serving.
	valid := domain.DefaultSettings()
	valid.InactiveTimeoutMinutes = 30
	require.NoError(t, manager.ApplySettings(ctx, valid))

	cancel()
	require.NoError(t, <-done)
}

func TestScopeFilterFailsClosedOnResolveError(t *testing.T) {
	workspace := newFakeWorkspace(domain.Pane{ID: "p1"})
	workspace.rootErr["p1"] = assert.AnError
	filter := NewScopeFilter(workspace, nil)

	assert.False(t, filter.IsManaged(context.Background(), "p1"))
}

func TestScopeFilterManagedOnlyForMainRoot(t *testing.T) {
	workspace := newFakeWorkspace(domain.Pane{ID: "main"}, domain.Pane{ID: "side"})
	workspace.roots["side"] = domain.RootSidePanel
	filter := NewScopeFilter(workspace, nil)

	assert.True(t, filter.IsManaged(context.Background(), "main"))
	assert.False(t, filter.IsManaged(context.Background(), "side"))
}
