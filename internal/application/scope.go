package application

import (
	"context"
	"log/slog"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
)

// ScopeFilter decides whether a pane belongs to the managed domain.
// A pane is managed iff its structural root is the main content area;
// anything hanging off a side panel is out of scope regardless of its
// view kind. The check is read-only and runs for every pane on every
// sweep.
type ScopeFilter struct {
	workspace ports.Workspace
	logger    *slog.Logger
}

func NewScopeFilter(workspace ports.Workspace, logger *slog.Logger) *ScopeFilter {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScopeFilter{workspace: workspace, logger: logger}
}

// IsManaged reports whether the pane may be considered for eviction.
// When root resolution fails the filter fails closed: the pane is
// treated as unmanaged rather than risk evicting a panel the user did
// not intend to be touched.
func (f *ScopeFilter) IsManaged(ctx context.Context, id domain.PaneID) bool {
	root, err := f.workspace.ResolveRoot(ctx, id)
	if err != nil {
		f.logger.Warn("resolve pane root failed, excluding pane", "pane", id, "error", err)
		return false
	}

	return root == domain.RootMain
}
