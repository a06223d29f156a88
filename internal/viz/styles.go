package viz

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	active  lipgloss.Style
	warning lipgloss.Style
	body    lipgloss.Style
	ground  lipgloss.Style
	panel   lipgloss.Style
	column  lipgloss.Style
	help    lipgloss.Style
}

func newStyles(th Theme) styles {
	return styles{
		header:  lipgloss.NewStyle().Foreground(th.Accent).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(th.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(th.Text),
		active:  lipgloss.NewStyle().Foreground(th.Accent).Bold(true),
		warning: lipgloss.NewStyle().Foreground(th.Warning).Bold(true),
		body:    lipgloss.NewStyle().Foreground(th.Body),
		ground:  lipgloss.NewStyle().Foreground(th.Ground),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(th.Muted).
			Padding(0, 2).
			Width(40),
		column: lipgloss.NewStyle().Padding(0, 2),
		help:   lipgloss.NewStyle().Foreground(th.Muted).MarginTop(1),
	}
}
