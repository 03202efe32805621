package history

import (
	"testing"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderEmpty(t *testing.T) {
	out := Render(nil)
	assert.Contains(t, out, "Closed Tabs")
	assert.Contains(t, out, "No closed tabs recorded.")
}

func TestRenderEntries(t *testing.T) {
	entries := []domain.ClosedTabEntry{
		{
			ClosedAt:    time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC),
			Title:       "notes",
			InactiveFor: 95 * time.Minute,
			FilePath:    "/home/me/notes.md",
		},
		{
			ClosedAt:    time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC),
			Title:       "scratch",
			InactiveFor: 30 * time.Minute,
		},
	}

	out := Render(entries)

	assert.Contains(t, out, "2026-08-23 14:30:00")
	assert.Contains(t, out, "notes")
	assert.Contains(t, out, "(inactive for 95.0 minutes)")
	assert.Contains(t, out, "/home/me/notes.md")
	assert.Contains(t, out, "scratch")
}
