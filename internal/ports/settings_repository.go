package ports

import (
	"context"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
)

// SettingsRepository supplies the settings snapshot at start and on
// each change, and persists it opaquely. Implementations validate at
// the boundary: Load never returns an invalid snapshot and Save
// rejects one.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
