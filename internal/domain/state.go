package domain

import "time"

// PersistedState carries the activity records and history entries
// across manager restarts. Without it every restart would reset the
// grace period for all panes and forget what was closed.
type PersistedState struct {
	LastActivity map[PaneID]time.Time
	History      []ClosedTabEntry
}
