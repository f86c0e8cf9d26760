package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Tab", "Switch panel focus"},
		{"Ctrl+N", "New document"},
		{"Ctrl+O", "Open file"},
		{"Ctrl+S", "Save"},
		{"Alt+S", "Save as"},
		{"Ctrl+W", "Close tab"},
		{"[, ]", "Previous / next tab"},
		{"t", "Cycle theme"},
	}
}

// GetDocumentKeys returns document key bindings
func GetDocumentKeys() []KeyBinding {
	return []KeyBinding{
		{"p", "Pretty-print document"},
		{"m", "Minify document"},
		{"Ctrl+Z", "Undo"},
		{"Ctrl+Y", "Redo"},
		{"f", "Find"},
		{"r", "Find and replace"},
		{"E", "Show parse error"},
	}
}

// GetEditorKeys returns editor key bindings
func GetEditorKeys() []KeyBinding {
	return []KeyBinding{
		{"e, i", "Enter edit mode"},
		{"Esc", "Leave edit mode"},
		{"y", "Copy document"},
		{"↑↓←→/hjkl", "Move cursor"},
		{"g / G", "Start / end of document"},
		{"Ctrl+U/D", "Page up / down"},
	}
}

// GetTreeKeys returns tree view key bindings
func GetTreeKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k, ↓/j", "Move up / down"},
		{"→/l, Space", "Expand node"},
		{"←/h", "Collapse or go to parent"},
		{"Enter", "Jump to node in editor"},
		{"c", "Copy value"},
		{"Shift+C", "Copy key"},
		{"y", "Copy path"},
	}
}

// Render creates the help view
func Render(width, height int, theme lipgloss.Style) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75")).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazyjson - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name string
		keys []KeyBinding
	}{
		{"Global", GetGlobalKeys()},
		{"Document", GetDocumentKeys()},
		{"Editor", GetEditorKeys()},
		{"Tree", GetTreeKeys()},
	}

	for _, section := range sections {
		b.WriteString(sectionStyle.Render(section.name))
		b.WriteString("\n")
		for _, kb := range section.keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Italic(true).
		Render("  Press ? or Esc to close"))

	content := b.String()

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(content)
}
