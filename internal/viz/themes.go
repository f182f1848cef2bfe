package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a colour ramp for map cells plus the chrome around them.
type Theme struct {
	Name    string
	Ramp    []lipgloss.Color
	Invalid lipgloss.Color
	Title   lipgloss.Color
	Muted   lipgloss.Color
}

var (
	// ThemeMoreland follows the blue-white-red diverging ramp of the PNG
	// export, so regular orbits read blue and chaotic ones red.
	ThemeMoreland = Theme{
		Name: "moreland",
		Ramp: []lipgloss.Color{
			"#3b4cc0", "#5977e3", "#7b9ff9", "#9ebeff", "#c0d4f5",
			"#dddcdc", "#f2cbb7", "#f7ac8e", "#ee8468", "#d65244", "#b40426",
		},
		Invalid: "#000000",
		Title:   "#00ccff",
		Muted:   "#666688",
	}

	ThemeRetro = Theme{
		Name: "retro",
		Ramp: []lipgloss.Color{
			"#001100", "#003300", "#005500", "#007700", "#00aa00", "#00dd00", "#88ff88",
		},
		Invalid: "#ff0000",
		Title:   "#00ff00",
		Muted:   "#005500",
	}

	ThemeGray = Theme{
		Name: "gray",
		Ramp: []lipgloss.Color{
			"#111111", "#333333", "#555555", "#777777", "#999999", "#bbbbbb", "#dddddd", "#ffffff",
		},
		Invalid: "#ff0000",
		Title:   "#ffffff",
		Muted:   "#888888",
	}

	Themes = []Theme{ThemeMoreland, ThemeRetro, ThemeGray}
)

// GetTheme returns a theme by name, falling back to moreland.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMoreland
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
