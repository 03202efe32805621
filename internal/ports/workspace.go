package ports

import (
	"context"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
)

// Workspace is the host that owns the panes. Enumeration and state
// queries are cheap and synchronous; ClosePane is the only call with
// real latency. The host may destroy panes between enumeration and
// use, so ClosePane on a stale handle returns domain.ErrPaneNotFound.
type Workspace interface {
	Panes(ctx context.Context) ([]domain.Pane, error)
	// FocusedPane reports the currently focused pane, if any.
	FocusedPane(ctx context.Context) (domain.PaneID, bool, error)
	// ResolveRoot walks a pane's structural ancestry to the workspace
	// root it hangs off. An error means the ancestry could not be
	// determined; callers must fail closed.
	ResolveRoot(ctx context.Context, id domain.PaneID) (domain.RootKind, error)
	ClosePane(ctx context.Context, id domain.PaneID) error
}

// ActivitySource delivers host activity signals (focus changes,
// content opens). Subscribe returns a release func; the manager owns
// the subscription and releases it on shutdown.
type ActivitySource interface {
	Subscribe(ctx context.Context) (<-chan domain.ActivityEvent, func(), error)
}
