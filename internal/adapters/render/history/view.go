// Package history renders the eviction history log for the terminal.
package history

import (
	"fmt"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title lipgloss.Style
	entry lipgloss.Style
	meta  lipgloss.Style
	path  lipgloss.Style
	empty lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true),
		entry: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		path:  lipgloss.NewStyle().Faint(true),
		empty: lipgloss.NewStyle().Faint(true),
	}
}

// Render formats a most-recent-first entry sequence as the interactive
// history view.
func Render(entries []domain.ClosedTabEntry) string {
	s := newStyles()

	lines := []string{s.title.Render("Closed Tabs")}
	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No closed tabs recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, entry := range entries {
		line := "  " + s.meta.Render(entry.ClosedAt.Format("2006-01-02 15:04:05")) +
			"  " + s.entry.Render(entry.Title) +
			"  " + s.meta.Render(fmt.Sprintf("(inactive for %.1f minutes)", entry.InactiveMinutes()))
		if entry.FilePath != "" {
			line += "  " + s.path.Render(entry.FilePath)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
