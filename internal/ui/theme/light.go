package theme

import "github.com/charmbracelet/lipgloss"

// LightTheme returns the light theme
func LightTheme() Theme {
	return Theme{
		Name: "light",

		Background: lipgloss.Color("255"),
		Foreground: lipgloss.Color("236"),

		Border:        lipgloss.Color("250"),
		BorderFocused: lipgloss.Color("27"),
		Selection:     lipgloss.Color("253"),
		Cursor:        lipgloss.Color("240"),

		Success: lipgloss.Color("28"),
		Warning: lipgloss.Color("130"),
		Error:   lipgloss.Color("160"),
		Info:    lipgloss.Color("26"),
		Comment: lipgloss.Color("245"),

		Match:        lipgloss.Color("228"),
		CurrentMatch: lipgloss.Color("208"),

		JSONKey:     lipgloss.Color("19"),
		JSONString:  lipgloss.Color("22"),
		JSONNumber:  lipgloss.Color("90"),
		JSONBoolean: lipgloss.Color("27"),
		JSONNull:    lipgloss.Color("243"),
	}
}
