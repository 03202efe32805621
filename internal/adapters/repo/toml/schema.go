package toml

import (
	"fmt"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int            `toml:"version"`
	Settings settingsSchema `toml:"settings"`
}

type settingsSchema struct {
	Enabled                *bool  `toml:"enabled"`
	InactiveTimeoutMinutes int    `toml:"inactive_timeout_minutes"`
	CheckIntervalSeconds   int    `toml:"check_interval_seconds"`
	LogHistory             *bool  `toml:"log_history"`
	LogToFile              bool   `toml:"log_to_file"`
	LogFilePath            string `toml:"log_file_path,omitempty"`
	MaxHistoryEntries      int    `toml:"max_history_entries"`
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func toSchema(settings domain.Settings) fileSchema {
	enabled := settings.Enabled
	logHistory := settings.LogHistory

	return fileSchema{
		Version: currentSchemaVersion,
		Settings: settingsSchema{
			Enabled:                &enabled,
			InactiveTimeoutMinutes: settings.InactiveTimeoutMinutes,
			CheckIntervalSeconds:   settings.CheckIntervalSeconds,
			LogHistory:             &logHistory,
			LogToFile:              settings.LogToFile,
			LogFilePath:            settings.LogFilePath,
			MaxHistoryEntries:      settings.MaxHistoryEntries,
		},
	}
}

// fromSchema maps the file onto a settings snapshot, substituting the
// shipped default for every missing or non-positive numeric field so a
// malformed file degrades instead of breaking the schedule. Booleans
// absent from the file keep their defaults via pointer fields.
func fromSchema(file fileSchema) domain.Settings {
	settings := domain.DefaultSettings()
	raw := file.Settings

	if raw.Enabled != nil {
		settings.Enabled = *raw.Enabled
	}
	if raw.InactiveTimeoutMinutes > 0 {
		settings.InactiveTimeoutMinutes = raw.InactiveTimeoutMinutes
	}
	if raw.CheckIntervalSeconds > 0 {
		settings.CheckIntervalSeconds = raw.CheckIntervalSeconds
	}
	if raw.LogHistory != nil {
		settings.LogHistory = *raw.LogHistory
	}
	settings.LogToFile = raw.LogToFile
	if raw.LogFilePath != "" {
		settings.LogFilePath = raw.LogFilePath
	}
	if raw.MaxHistoryEntries > 0 {
		settings.MaxHistoryEntries = raw.MaxHistoryEntries
	}

	return settings
}
