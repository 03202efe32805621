package domain

import "time"

// ClosedTabEntry records one eviction. Entries are immutable once
// created; insertion order equals the chronological order of eviction.
type ClosedTabEntry struct {
	ClosedAt    time.Time
	Title       string
	InactiveFor time.Duration
	FilePath    string
}

// InactiveMinutes reports the inactive duration in fractional minutes,
// the unit used by every rendered view of the history.
func (e ClosedTabEntry) InactiveMinutes() float64 {
	return e.InactiveFor.Minutes()
}
