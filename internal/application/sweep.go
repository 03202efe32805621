package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
)

// SweepResult is what one classify-and-evict pass produced.
type SweepResult struct {
	Evicted []domain.ClosedTabEntry
	// FailedCloses counts panes that classified as evictable but whose
	// destruction failed. They are retried naturally on a later sweep,
	// never within the same one.
	FailedCloses int
}

// Sweeper runs the classify-and-evict procedure over all managed
// panes. It is stateless between cycles beyond the activity tracker.
type Sweeper struct {
	workspace ports.Workspace
	scope     *ScopeFilter
	tracker   *ActivityTracker
	history   *HistoryLog
	clock     ports.Clock
	logger    *slog.Logger
}

func NewSweeper(workspace ports.Workspace, scope *ScopeFilter, tracker *ActivityTracker, history *HistoryLog, clock ports.Clock, logger *slog.Logger) *Sweeper {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		workspace: workspace,
		scope:     scope,
		tracker:   tracker,
		history:   history,
		clock:     clock,
		logger:    logger,
	}
}

// Sweep performs one pass: enumerate managed panes, classify each in
// precedence order pinned > focused > untracked > active > evictable,
// then evict and log the evictable ones in enumeration order. A
// failure on one pane never aborts the rest of the cycle.
func (s *Sweeper) Sweep(ctx context.Context, settings domain.Settings) (SweepResult, error) {
	if !settings.Enabled {
		return SweepResult{}, nil
	}

	panes, focused, hasFocus, err := s.enumerate(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	seen := make(map[domain.PaneID]struct{}, len(panes))
	for _, pane := range panes {
		seen[pane.ID] = struct{}{}
	}
	s.tracker.Reconcile(seen)

	now := s.clock.Now()
	timeout := settings.InactiveTimeout()

	var result SweepResult
	for _, pane := range panes {
		state, inactiveFor := s.classify(pane, focused, hasFocus, now, timeout)
		if state != domain.StateEvictable {
			continue
		}

		entry := domain.ClosedTabEntry{
			ClosedAt:    now,
			Title:       pane.Title,
			InactiveFor: inactiveFor,
			FilePath:    pane.FilePath,
		}
		s.history.Append(ctx, entry, settings)

		if err := s.workspace.ClosePane(ctx, pane.ID); err != nil {
			// Already gone counts as closed; the user beat us to it.
			// Any other failure keeps the pane out of the reported
			// count, but its history entry is not retracted.
			if !errors.Is(err, domain.ErrPaneNotFound) {
				s.logger.Warn("close pane failed", "pane", pane.ID, "title", pane.Title, "error", err)
				result.FailedCloses++
				continue
			}
		}

		result.Evicted = append(result.Evicted, entry)
	}

	s.logger.Debug("sweep finished", "managed", len(panes), "evicted", len(result.Evicted), "failed", result.FailedCloses)

	return result, nil
}

// PaneStatus is a read-only classification of one managed pane, used
// by the live status view.
type PaneStatus struct {
	Pane        domain.Pane
	State       domain.PaneState
	Focused     bool
	InactiveFor time.Duration
	// CloseIn is the remaining grace before the pane becomes
	// evictable. Zero for protected panes.
	CloseIn time.Duration
}

// Snapshot classifies every managed pane without evicting anything.
// First-seen panes are seeded to now, exactly as a sweep would.
func (s *Sweeper) Snapshot(ctx context.Context, settings domain.Settings) ([]PaneStatus, error) {
	panes, focused, hasFocus, err := s.enumerate(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	timeout := settings.InactiveTimeout()

	statuses := make([]PaneStatus, 0, len(panes))
	for _, pane := range panes {
		state, inactiveFor := s.classify(pane, focused, hasFocus, now, timeout)

		status := PaneStatus{
			Pane:        pane,
			State:       state,
			Focused:     hasFocus && pane.ID == focused,
			InactiveFor: inactiveFor,
		}
		if state == domain.StateActive || state == domain.StateUntracked {
			status.CloseIn = timeout - inactiveFor
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

// enumerate lists the managed panes and the focused pane. Scope
// filtering happens here; a pane whose root cannot be resolved is
// silently excluded (the filter fails closed and logs).
func (s *Sweeper) enumerate(ctx context.Context) ([]domain.Pane, domain.PaneID, bool, error) {
	all, err := s.workspace.Panes(ctx)
	if err != nil {
		return nil, "", false, fmt.Errorf("enumerate panes: %w", err)
	}

	focused, hasFocus, err := s.workspace.FocusedPane(ctx)
	if err != nil {
		return nil, "", false, fmt.Errorf("resolve focused pane: %w", err)
	}

	managed := make([]domain.Pane, 0, len(all))
	for _, pane := range all {
		if s.scope.IsManaged(ctx, pane.ID) {
			managed = append(managed, pane)
		}
	}

	if hasFocus {
		found := false
		for _, pane := range managed {
			if pane.ID == focused {
				found = true
				break
			}
		}
		hasFocus = found
	}

	return managed, focused, hasFocus, nil
}

// classify applies the precedence order and seeds first-seen panes.
// The threshold is closed at the upper bound: elapsed == timeout is
// evictable.
func (s *Sweeper) classify(pane domain.Pane, focused domain.PaneID, hasFocus bool, now time.Time, timeout time.Duration) (domain.PaneState, time.Duration) {
	last, tracked := s.tracker.LastActivity(pane.ID)

	var inactiveFor time.Duration
	if tracked {
		inactiveFor = now.Sub(last)
	}

	switch {
	case pane.Pinned:
		return domain.StateProtected, inactiveFor
	case hasFocus && pane.ID == focused:
		return domain.StateProtected, inactiveFor
	case !tracked:
		s.tracker.Touch(pane.ID, now)
		return domain.StateUntracked, 0
	case inactiveFor < timeout:
		return domain.StateActive, inactiveFor
	default:
		return domain.StateEvictable, inactiveFor
	}
}
