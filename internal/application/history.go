package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
)

// mirrorHeader opens a freshly created mirror file. Existing content
// is never rewritten; everything after the header is append-only.
const mirrorHeader = "# Closed Tabs Log\n\nTabs closed automatically after inactivity.\n\n"

// HistoryLog is the bounded, ordered record of eviction events.
// Storage order is insertion order; when an append would exceed the
// configured capacity the oldest entries are dropped first. The
// optional durable mirror is independent of the in-memory record: a
// mirror failure never rolls back or blocks the append that caused it.
type HistoryLog struct {
	mu      sync.Mutex
	entries []domain.ClosedTabEntry

	sink   ports.TextSink
	logger *slog.Logger
}

func NewHistoryLog(sink ports.TextSink, logger *slog.Logger) *HistoryLog {
	if logger == nil {
		logger = slog.Default()
	}

	return &HistoryLog{sink: sink, logger: logger}
}

// Append records one eviction. When settings.LogHistory is off the
// entry is discarded, not queued. Capacity is read from the settings
// snapshot per call, so a lowered MaxHistoryEntries trims on the next
// append rather than retroactively.
func (l *HistoryLog) Append(ctx context.Context, entry domain.ClosedTabEntry, settings domain.Settings) {
	if !settings.LogHistory {
		return
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if max := settings.MaxHistoryEntries; max > 0 && len(l.entries) > max {
		l.entries = append([]domain.ClosedTabEntry(nil), l.entries[len(l.entries)-max:]...)
	}
	l.mu.Unlock()

	if settings.LogToFile && settings.LogFilePath != "" {
		l.mirror(ctx, settings.LogFilePath, entry)
	}
}

// List returns a most-recent-first projection of the log. It never
// mutates storage order.
func (l *HistoryLog) List() []domain.ClosedTabEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.ClosedTabEntry, len(l.entries))
	for i, entry := range l.entries {
		out[len(l.entries)-1-i] = entry
	}

	return out
}

// Entries returns a copy of the log in storage (insertion) order, for
// persistence.
func (l *HistoryLog) Entries() []domain.ClosedTabEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]domain.ClosedTabEntry(nil), l.entries...)
}

// Restore replaces the log contents with a persisted sequence, given
// in storage order. Capacity is enforced on the next append.
func (l *HistoryLog) Restore(entries []domain.ClosedTabEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]domain.ClosedTabEntry(nil), entries...)
}

// Len reports the current number of entries.
func (l *HistoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// Clear empties the in-memory log. The durable mirror file is left
// untouched.
func (l *HistoryLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}

// ExportText renders all entries grouped by calendar date, most recent
// date first and chronological within a date. The rendering is
// deterministic for a fixed entry sequence.
func (l *HistoryLog) ExportText() string {
	l.mu.Lock()
	entries := append([]domain.ClosedTabEntry(nil), l.entries...)
	l.mu.Unlock()

	if len(entries) == 0 {
		return "No closed tabs recorded.\n"
	}

	var dates []string
	byDate := make(map[string][]domain.ClosedTabEntry)
	for _, entry := range entries {
		date := entry.ClosedAt.Format("2006-01-02")
		if _, ok := byDate[date]; !ok {
			dates = append(dates, date)
		}
		byDate[date] = append(byDate[date], entry)
	}

	var b strings.Builder
	for i := len(dates) - 1; i >= 0; i-- {
		date := dates[i]
		fmt.Fprintf(&b, "%s\n", date)
		for _, entry := range byDate[date] {
			fmt.Fprintf(&b, "  %s\n", renderEntry(entry, "15:04:05"))
		}
	}

	return b.String()
}

// mirror appends one rendered line to the durable file, creating the
// file (with header) and its parent container on first use. Every
// failure here is logged and swallowed; the in-memory append already
// happened and is never retracted.
func (l *HistoryLog) mirror(ctx context.Context, path string, entry domain.ClosedTabEntry) {
	if l.sink == nil {
		return
	}

	line := "- " + renderEntry(entry, "2006-01-02 15:04:05")

	if err := l.sink.EnsureParent(ctx, path); err != nil {
		l.logger.Warn("create history mirror directory failed", "path", path, "error", err)
		return
	}

	exists, err := l.sink.Exists(ctx, path)
	if err != nil {
		l.logger.Warn("check history mirror failed", "path", path, "error", err)
		return
	}

	if !exists {
		err := l.sink.Create(ctx, path, mirrorHeader+line+"\n")
		if err == nil {
			return
		}
		// Lost the create race; the winner wrote the header.
		if !errors.Is(err, domain.ErrSinkExists) {
			l.logger.Warn("create history mirror failed", "path", path, "error", err)
			return
		}
	}

	if err := l.sink.AppendLine(ctx, path, line); err != nil {
		l.logger.Warn("append to history mirror failed", "path", path, "error", err)
	}
}

// renderEntry formats one entry as a human-readable line:
// time — name (inactive for N.N minutes) [— path].
func renderEntry(entry domain.ClosedTabEntry, timeLayout string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s (inactive for %.1f minutes)", entry.ClosedAt.Format(timeLayout), entry.Title, entry.InactiveMinutes())
	if entry.FilePath != "" {
		fmt.Fprintf(&b, " — %s", entry.FilePath)
	}

	return b.String()
}
