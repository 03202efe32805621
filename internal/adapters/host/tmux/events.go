package tmux

import (
	"context"
	"log/slog"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
)

const defaultPollInterval = time.Second

// ActivityPoller turns tmux state changes into activity events. tmux
// has no push API for focus or content changes, so the poller samples
// the active pane and each pane's current path/command and emits an
// event when one changes.
type ActivityPoller struct {
	workspace *Workspace
	interval  time.Duration
	clock     ports.Clock
	logger    *slog.Logger
}

var _ ports.ActivitySource = (*ActivityPoller)(nil)

func NewActivityPoller(workspace *Workspace, interval time.Duration, clock ports.Clock, logger *slog.Logger) *ActivityPoller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ActivityPoller{workspace: workspace, interval: interval, clock: clock, logger: logger}
}

// Subscribe starts the poll loop. The returned release func stops the
// loop and closes the channel; the subscriber owns the handle.
func (p *ActivityPoller) Subscribe(ctx context.Context) (<-chan domain.ActivityEvent, func(), error) {
	pollCtx, cancel := context.WithCancel(ctx)
	events := make(chan domain.ActivityEvent, 16)

	go p.loop(pollCtx, events)

	return events, cancel, nil
}

type paneContent struct {
	path    string
	command string
}

func (p *ActivityPoller) loop(ctx context.Context, events chan<- domain.ActivityEvent) {
	defer close(events)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var lastFocused domain.PaneID
	contents := make(map[domain.PaneID]paneContent)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		now := p.clock.Now()

		if focused, ok, err := p.workspace.FocusedPane(ctx); err != nil {
			p.logger.Debug("poll focused pane failed", "error", err)
		} else if ok && focused != lastFocused {
			lastFocused = focused
			p.emit(ctx, events, domain.ActivityEvent{PaneID: focused, Kind: domain.ActivityFocus, At: now})
		}

		panes, err := p.workspace.Panes(ctx)
		if err != nil {
			p.logger.Debug("poll panes failed", "error", err)
			continue
		}

		seen := make(map[domain.PaneID]struct{}, len(panes))
		for _, pane := range panes {
			seen[pane.ID] = struct{}{}

			current := paneContent{path: pane.FilePath, command: pane.Kind}
			previous, known := contents[pane.ID]
			contents[pane.ID] = current

			if known && previous != current {
				p.emit(ctx, events, domain.ActivityEvent{PaneID: pane.ID, Kind: domain.ActivityContent, At: now})
			}
		}

		for id := range contents {
			if _, ok := seen[id]; !ok {
				delete(contents, id)
			}
		}
	}
}

func (p *ActivityPoller) emit(ctx context.Context, events chan<- domain.ActivityEvent, event domain.ActivityEvent) {
	select {
	case events <- event:
	case <-ctx.Done():
	}
}
