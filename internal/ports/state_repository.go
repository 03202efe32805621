package ports

import (
	"context"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
)

// StateRepository persists tracker records and the history log between
// manager runs. Load on a fresh install returns an empty state, not an
// error.
type StateRepository interface {
	Load(ctx context.Context) (domain.PersistedState, error)
	Save(ctx context.Context, state domain.PersistedState) error
}
