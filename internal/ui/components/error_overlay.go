package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebyang/lazyjson/internal/jsondoc"
	"github.com/calebyang/lazyjson/internal/ui/theme"
)

// GoToErrorMsg asks the editor to move its cursor to the error location
type GoToErrorMsg struct {
	Line   int
	Column int
}

// CloseErrorOverlayMsg dismisses the overlay
type CloseErrorOverlayMsg struct{}

// ErrorOverlay shows the details of a parse failure with a shortcut to
// jump to the offending location
type ErrorOverlay struct {
	Err     *jsondoc.ParseError
	Theme   theme.Theme
	Width   int
	Visible bool
}

// NewErrorOverlay creates a new error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{Theme: th}
}

// Open shows the overlay for a parse error
func (e *ErrorOverlay) Open(err *jsondoc.ParseError) {
	e.Err = err
	e.Visible = true
}

// Update handles keyboard input
func (e *ErrorOverlay) Update(msg tea.KeyMsg) (*ErrorOverlay, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if e.Err == nil {
			return e, nil
		}
		line, col := e.Err.Line, e.Err.Column
		return e, func() tea.Msg {
			return GoToErrorMsg{Line: line, Column: col}
		}
	case "esc", "q":
		return e, func() tea.Msg {
			return CloseErrorOverlayMsg{}
		}
	}
	return e, nil
}

// View renders the overlay box
func (e *ErrorOverlay) View() string {
	if e.Err == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Error).
		Bold(true)

	msgStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Foreground).
		Width(e.Width - 4)

	posStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Comment)

	helpStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Comment).
		Italic(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Padding(0, 1).
		Width(e.Width)

	return boxStyle.Render(
		titleStyle.Render("Parse error") + "\n\n" +
			msgStyle.Render(e.Err.Msg) + "\n" +
			posStyle.Render(fmt.Sprintf("at line %d, column %d", e.Err.Line, e.Err.Column)) + "\n\n" +
			helpStyle.Render("Enter: go to location │ Esc: close"))
}
