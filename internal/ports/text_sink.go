package ports

import "context"

// TextSink is a path-addressed, append-only text resource used for the
// durable history mirror. Create is exclusive: losing a race with a
// concurrent creator yields domain.ErrSinkExists so the caller can
// fall back to appending. EnsureParent tolerates a concurrent creator
// of the same container.
type TextSink interface {
	Exists(ctx context.Context, path string) (bool, error)
	Create(ctx context.Context, path string, content string) error
	AppendLine(ctx context.Context, path string, line string) error
	EnsureParent(ctx context.Context, path string) error
}
