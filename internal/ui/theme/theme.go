package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Comment lipgloss.Color

	// Search highlights
	Match        lipgloss.Color
	CurrentMatch lipgloss.Color

	// JSON token colors
	JSONKey     lipgloss.Color
	JSONString  lipgloss.Color
	JSONNumber  lipgloss.Color
	JSONBoolean lipgloss.Color
	JSONNull    lipgloss.Color
}

// Names lists the available themes in cycle order
func Names() []string {
	return []string{"default", "light"}
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

// NextTheme returns the theme name after the given one, for cycling at
// runtime
func NextTheme(name string) string {
	names := Names()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
