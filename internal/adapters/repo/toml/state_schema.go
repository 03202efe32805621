package toml

import (
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
)

type stateFileSchema struct {
	Version  int              `toml:"version"`
	Activity []activitySchema `toml:"activity"`
	History  []entrySchema    `toml:"history"`
}

type activitySchema struct {
	PaneID string `toml:"pane_id"`
	LastAt string `toml:"last_at"`
}

type entrySchema struct {
	ClosedAt        string `toml:"closed_at"`
	Title           string `toml:"title"`
	InactiveSeconds int64  `toml:"inactive_seconds"`
	FilePath        string `toml:"file_path,omitempty"`
}

func toStateSchema(state domain.PersistedState) stateFileSchema {
	file := stateFileSchema{Version: currentSchemaVersion}

	for id, at := range state.LastActivity {
		file.Activity = append(file.Activity, activitySchema{
			PaneID: string(id),
			LastAt: formatTime(at),
		})
	}

	for _, entry := range state.History {
		file.History = append(file.History, entrySchema{
			ClosedAt:        formatTime(entry.ClosedAt),
			Title:           entry.Title,
			InactiveSeconds: int64(entry.InactiveFor / time.Second),
			FilePath:        entry.FilePath,
		})
	}

	return file
}

// fromStateSchema drops records it cannot parse instead of failing the
// whole load; a single corrupt line must not reset everything else.
func fromStateSchema(file stateFileSchema) domain.PersistedState {
	state := domain.PersistedState{LastActivity: make(map[domain.PaneID]time.Time, len(file.Activity))}

	for _, record := range file.Activity {
		at := parseTime(record.LastAt)
		if record.PaneID == "" || at.IsZero() {
			continue
		}
		state.LastActivity[domain.PaneID(record.PaneID)] = at
	}

	for _, record := range file.History {
		closedAt := parseTime(record.ClosedAt)
		if closedAt.IsZero() {
			continue
		}
		state.History = append(state.History, domain.ClosedTabEntry{
			ClosedAt:    closedAt,
			Title:       record.Title,
			InactiveFor: time.Duration(record.InactiveSeconds) * time.Second,
			FilePath:    record.FilePath,
		})
	}

	return state
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
