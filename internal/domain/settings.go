package domain

import (
	"fmt"
	"time"
)

// Settings is the configuration snapshot the core consults per
// operation. A change to MaxHistoryEntries only trims on the next
// mutating call, never retroactively mid-read.
type Settings struct {
	Enabled                bool
	InactiveTimeoutMinutes int
	CheckIntervalSeconds   int
	LogHistory             bool
	LogToFile              bool
	LogFilePath            string
	MaxHistoryEntries      int
}

// DefaultSettings returns the shipped defaults: close after a day of
// inactivity, check every minute, keep the last 50 evictions in memory.
func DefaultSettings() Settings {
	return Settings{
		Enabled:                true,
		InactiveTimeoutMinutes: 1440,
		CheckIntervalSeconds:   60,
		LogHistory:             true,
		LogToFile:              false,
		LogFilePath:            "closed-tabs.md",
		MaxHistoryEntries:      50,
	}
}

// InactiveTimeout returns the eviction threshold as a duration.
func (s Settings) InactiveTimeout() time.Duration {
	return time.Duration(s.InactiveTimeoutMinutes) * time.Minute
}

// CheckInterval returns the sweep period as a duration.
func (s Settings) CheckInterval() time.Duration {
	return time.Duration(s.CheckIntervalSeconds) * time.Second
}

// Validate rejects values the sweep schedule cannot run with. Callers
// at the settings boundary keep the previous valid snapshot when this
// fails; the core never sees an invalid Settings value.
func (s Settings) Validate() error {
	if s.InactiveTimeoutMinutes <= 0 {
		return fmt.Errorf("%w: inactiveTimeoutMinutes must be positive, got %d", ErrInvalidSettings, s.InactiveTimeoutMinutes)
	}
	if s.CheckIntervalSeconds <= 0 {
		return fmt.Errorf("%w: checkIntervalSeconds must be positive, got %d", ErrInvalidSettings, s.CheckIntervalSeconds)
	}
	if s.MaxHistoryEntries <= 0 {
		return fmt.Errorf("%w: maxHistoryEntries must be positive, got %d", ErrInvalidSettings, s.MaxHistoryEntries)
	}
	if s.LogToFile && s.LogFilePath == "" {
		return fmt.Errorf("%w: logFilePath is empty while logToFile is enabled", ErrInvalidSettings)
	}
	return nil
}
