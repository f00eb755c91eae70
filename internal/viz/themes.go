package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the TUI colors. HueShift rotates the bar palette.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color
	Running  lipgloss.Color
	Paused   lipgloss.Color
	Error    lipgloss.Color
	HueShift float64
}

var (
	ThemeSlate = Theme{
		Name:    "slate",
		Title:   lipgloss.Color("#60a5fa"),
		Text:    lipgloss.Color("#f9fafb"),
		Muted:   lipgloss.Color("#9ca3af"),
		Border:  lipgloss.Color("#374151"),
		Running: lipgloss.Color("#22c55e"),
		Paused:  lipgloss.Color("#f59e0b"),
		Error:   lipgloss.Color("#ef4444"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Title:    lipgloss.Color("#ff00ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Border:   lipgloss.Color("#444466"),
		Running:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff0000"),
		HueShift: 90,
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Title:    lipgloss.Color("#00ff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Border:   lipgloss.Color("#00cc00"),
		Running:  lipgloss.Color("#88ff88"),
		Paused:   lipgloss.Color("#ffff00"),
		Error:    lipgloss.Color("#ff0000"),
		HueShift: -90,
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Title:    lipgloss.Color("#ff6b6b"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Border:   lipgloss.Color("#feca57"),
		Running:  lipgloss.Color("#5fd068"),
		Paused:   lipgloss.Color("#ffc048"),
		Error:    lipgloss.Color("#ff4757"),
		HueShift: 150,
	}

	Themes = []Theme{
		ThemeSlate,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to slate.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSlate
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
