package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	pane      lipgloss.Style
	detail    lipgloss.Style
	empty     lipgloss.Style
	protected lipgloss.Style
	active    lipgloss.Style
	untracked lipgloss.Style
	evictable lipgloss.Style
	flag      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		pane:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		empty:     lipgloss.NewStyle().Faint(true),
		protected: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		active:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		untracked: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		evictable: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		flag:      lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	}
}
