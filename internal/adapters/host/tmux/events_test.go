package tmux

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mutableRunner struct {
	mu        sync.Mutex
	responses map[string]string
}

func (r *mutableRunner) run(_ context.Context, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := args[0]
	return r.responses[key], nil
}

func (r *mutableRunner) set(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.responses[key] = value
}

func awaitEvent(t *testing.T, events <-chan domain.ActivityEvent, kind domain.ActivityEventKind) domain.ActivityEvent {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event, ok := <-events:
			require.True(t, ok, "event channel closed before %s event", kind)
			if event.Kind == kind {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", kind)
		}
	}
}

func TestActivityPollerEmitsFocusAndContentEvents(t *testing.T) {
	runner := &mutableRunner{responses: map[string]string{
		"display-message": "%1",
		"list-panes":      "%1\tmain\teditor\t/home/me\tnvim\t0",
	}}

	workspace := NewWorkspace(runner.run, nil)
	poller := NewActivityPoller(workspace, 10*time.Millisecond, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, release, err := poller.Subscribe(ctx)
	require.NoError(t, err)

	event := awaitEvent(t, events, domain.ActivityFocus)
	assert.Equal(t, domain.PaneID("%1"), event.PaneID)

	// The pane's content changes; the next poll reports it.
	runner.set("list-panes", "%1\tmain\teditor\t/home/me/project\tnvim\t0")

	event = awaitEvent(t, events, domain.ActivityContent)
	assert.Equal(t, domain.PaneID("%1"), event.PaneID)

	release()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
