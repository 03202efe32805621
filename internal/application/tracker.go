package application

import (
	"sync"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
)

// ActivityTracker keeps the last-activity instant per pane. The
// association is weak: it is keyed by the host's stable pane ID, not
// by any live handle, and Reconcile discards IDs absent from the
// current enumeration so destroyed panes never need explicit cleanup.
type ActivityTracker struct {
	mu   sync.RWMutex
	last map[domain.PaneID]time.Time
}

func NewActivityTracker() *ActivityTracker {
	return &ActivityTracker{last: make(map[domain.PaneID]time.Time)}
}

// Touch records at as the pane's last-activity instant, overwriting
// any previous record.
func (t *ActivityTracker) Touch(id domain.PaneID, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last[id] = at
}

// LastActivity reports the recorded instant for a pane. ok is false
// when the pane was never touched; querying a destroyed pane is safe
// and simply reports absence.
func (t *ActivityTracker) LastActivity(id domain.PaneID) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	at, ok := t.last[id]
	return at, ok
}

// Reconcile drops every record whose ID is not in seen. Called at the
// start of each sweep with the current enumeration.
func (t *ActivityTracker) Reconcile(seen map[domain.PaneID]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id := range t.last {
		if _, ok := seen[id]; !ok {
			delete(t.last, id)
		}
	}
}

// Seed installs persisted records without overwriting fresher ones.
func (t *ActivityTracker) Seed(records map[domain.PaneID]time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, at := range records {
		if current, ok := t.last[id]; ok && current.After(at) {
			continue
		}
		t.last[id] = at
	}
}

// Export returns a copy of the tracked records for persistence.
func (t *ActivityTracker) Export() map[domain.PaneID]time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[domain.PaneID]time.Time, len(t.last))
	for id, at := range t.last {
		out[id] = at
	}

	return out
}

// Len reports the number of tracked panes.
func (t *ActivityTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.last)
}
