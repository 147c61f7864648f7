package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	panel     lipgloss.Style
	label     lipgloss.Style
	dim       lipgloss.Style
	ok        lipgloss.Style
	warn      lipgloss.Style
}

func defaultStyles() styles {
	brand := lipgloss.AdaptiveColor{Light: "26", Dark: "81"}
	subtle := lipgloss.AdaptiveColor{Light: "245", Dark: "244"}
	border := lipgloss.AdaptiveColor{Light: "250", Dark: "238"}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(brand),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(subtle),
		tabActive: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Background(brand),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		label:     lipgloss.NewStyle().Width(8).Foreground(subtle),
		dim:       lipgloss.NewStyle().Foreground(subtle),
		ok:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}
