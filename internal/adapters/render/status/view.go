package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/application"
	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Render produces the live status view: one line per managed pane with
// its classification, inactive duration, and remaining grace.
func Render(statuses []application.PaneStatus) string {
	return renderView(statuses, newStyles())
}

func renderView(statuses []application.PaneStatus, s styles) string {
	lines := []string{
		s.title.Render("Pane Status"),
		s.header.Render(fmt.Sprintf("managed panes: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No managed panes."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, renderPane(status, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPane(status application.PaneStatus, s styles) string {
	parts := []string{
		s.pane.Render(status.Pane.Title),
		stateStyle(status.State, s).Render(string(status.State)),
		s.detail.Render(fmt.Sprintf("inactive %s", formatMinutes(status.InactiveFor))),
	}

	if status.State == domain.StateActive || status.State == domain.StateUntracked {
		parts = append(parts, s.detail.Render(fmt.Sprintf("closes in %s", formatMinutes(status.CloseIn))))
	}
	for _, flag := range flags(status) {
		parts = append(parts, s.flag.Render(flag))
	}

	return "  " + strings.Join(parts, "  ")
}

func flags(status application.PaneStatus) []string {
	var out []string
	if status.Pane.Pinned {
		out = append(out, "[pinned]")
	}
	if status.Focused {
		out = append(out, "[focused]")
	}
	if status.State == domain.StateEvictable {
		out = append(out, "[will close]")
	}

	return out
}

func stateStyle(state domain.PaneState, s styles) lipgloss.Style {
	switch state {
	case domain.StateProtected:
		return s.protected
	case domain.StateUntracked:
		return s.untracked
	case domain.StateEvictable:
		return s.evictable
	default:
		return s.active
	}
}

func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%.1fm", d.Minutes())
}
