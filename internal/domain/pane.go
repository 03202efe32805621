package domain

import "time"

// PaneID is a stable, opaque identifier assigned by the host workspace.
// It survives focus changes and reordering; the host guarantees it is
// never reused while the workspace is running.
type PaneID string

// Pane is a read-only view of a host pane. The core never constructs
// panes itself and never mutates one; it only inspects state and asks
// the host to destroy a pane by ID.
type Pane struct {
	ID       PaneID
	Title    string
	FilePath string
	Kind     string
	Pinned   bool
}

// PaneState is the per-sweep classification of a managed pane.
type PaneState string

const (
	// StateProtected covers pinned panes and the focused pane.
	StateProtected PaneState = "protected"
	// StateUntracked means the pane was seen for the first time this
	// sweep; it gets a full grace period before it can be evicted.
	StateUntracked PaneState = "untracked"
	StateActive    PaneState = "active"
	StateEvictable PaneState = "evictable"
)

// RootKind identifies which structural root of the workspace a pane
// hangs off.
type RootKind string

const (
	RootMain      RootKind = "main"
	RootSidePanel RootKind = "side-panel"
)

// ActivityEventKind discriminates host activity signals. The sweep
// decision only needs recency, so both kinds collapse into a touch.
type ActivityEventKind string

const (
	ActivityFocus   ActivityEventKind = "focus"
	ActivityContent ActivityEventKind = "content"
)

// ActivityEvent is a host signal that a pane was used.
type ActivityEvent struct {
	PaneID PaneID
	Kind   ActivityEventKind
	At     time.Time
}
