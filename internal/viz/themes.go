package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colours the live view. Chart colours are asciigraph ANSI colours
// because the chart is rendered before lipgloss sees it.
type Theme struct {
	Name      string
	Body      lipgloss.Color
	Ground    lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
	Speed     asciigraph.AnsiColor
	Reference asciigraph.AnsiColor
}

var (
	ThemeDefault = Theme{
		Name:      "default",
		Body:      lipgloss.Color("#ff8c42"),
		Ground:    lipgloss.Color("#6b8e23"),
		Accent:    lipgloss.Color("86"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("245"),
		Warning:   lipgloss.Color("#ff4444"),
		Speed:     asciigraph.Aqua,
		Reference: asciigraph.Red,
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Body:      lipgloss.Color("#88ff88"),
		Ground:    lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#008800"),
		Warning:   lipgloss.Color("#ccff00"),
		Speed:     asciigraph.Lime,
		Reference: asciigraph.Yellow,
	}

	ThemeMono = Theme{
		Name:      "mono",
		Body:      lipgloss.Color("#ffffff"),
		Ground:    lipgloss.Color("#aaaaaa"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#dddddd"),
		Muted:     lipgloss.Color("#777777"),
		Warning:   lipgloss.Color("#ffffff"),
		Speed:     asciigraph.White,
		Reference: asciigraph.Gray,
	}
)

var themes = []Theme{ThemeDefault, ThemeRetro, ThemeMono}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName falls back to the default theme for unknown names.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func nextTheme(current Theme) Theme {
	for i, t := range themes {
		if t.Name == current.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return ThemeDefault
}
