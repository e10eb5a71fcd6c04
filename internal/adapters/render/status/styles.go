package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	item    lipgloss.Style
	detail  lipgloss.Style
	warning lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
	key     lipgloss.Style
	amount  lipgloss.Style
	pending lipgloss.Style
	updated lipgloss.Style
	failed  lipgloss.Style
	unknown lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		item:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		amount:  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		pending: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		updated: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		failed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		unknown: lipgloss.NewStyle().Faint(true),
	}
}
