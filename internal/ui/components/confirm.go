package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebyang/lazyjson/internal/ui/theme"
)

// ConfirmChoice is the option picked in a confirm dialog
type ConfirmChoice int

const (
	ConfirmYes ConfirmChoice = iota
	ConfirmNo
	ConfirmCancel
)

// ConfirmResultMsg carries the chosen option together with the dialog tag
// so the app knows which pending action to resume
type ConfirmResultMsg struct {
	Tag    string
	Choice ConfirmChoice
}

// ConfirmDialog asks a yes/no/cancel question before a destructive step,
// such as closing a tab with unsaved changes or reloading a file that
// changed on disk.
type ConfirmDialog struct {
	Title    string
	Message  string
	Tag      string
	YesLabel string
	NoLabel  string
	Theme    theme.Theme
	Width    int
	Visible  bool

	selected ConfirmChoice
}

// NewConfirmDialog creates a new confirm dialog
func NewConfirmDialog(th theme.Theme) *ConfirmDialog {
	return &ConfirmDialog{
		Theme:    th,
		YesLabel: "Yes",
		NoLabel:  "No",
	}
}

// Open shows the dialog. tag identifies the pending action in the result
// message.
func (c *ConfirmDialog) Open(tag, title, message, yesLabel, noLabel string) {
	c.Tag = tag
	c.Title = title
	c.Message = message
	c.YesLabel = yesLabel
	c.NoLabel = noLabel
	c.Visible = true
	c.selected = ConfirmYes
}

// Update handles keyboard input
func (c *ConfirmDialog) Update(msg tea.KeyMsg) (*ConfirmDialog, tea.Cmd) {
	emit := func(choice ConfirmChoice) tea.Cmd {
		tag := c.Tag
		return func() tea.Msg {
			return ConfirmResultMsg{Tag: tag, Choice: choice}
		}
	}

	switch msg.String() {
	case "left", "h", "shift+tab":
		if c.selected > ConfirmYes {
			c.selected--
		}
	case "right", "l", "tab":
		if c.selected < ConfirmCancel {
			c.selected++
		}
	case "y":
		return c, emit(ConfirmYes)
	case "n":
		return c, emit(ConfirmNo)
	case "enter":
		return c, emit(c.selected)
	case "esc", "q":
		return c, emit(ConfirmCancel)
	}
	return c, nil
}

// View renders the dialog box
func (c *ConfirmDialog) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(c.Theme.Warning).
		Bold(true)

	msgStyle := lipgloss.NewStyle().
		Foreground(c.Theme.Foreground).
		Width(c.Width - 4)

	buttons := []string{c.YesLabel, c.NoLabel, "Cancel"}
	var rendered []string
	for i, label := range buttons {
		style := lipgloss.NewStyle().Padding(0, 2)
		if ConfirmChoice(i) == c.selected {
			style = style.
				Foreground(c.Theme.Background).
				Background(c.Theme.Info).
				Bold(true)
		} else {
			style = style.
				Foreground(c.Theme.Foreground).
				Background(c.Theme.Selection)
		}
		rendered = append(rendered, style.Render(label))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.Theme.Warning).
		Padding(0, 1).
		Width(c.Width)

	return boxStyle.Render(
		titleStyle.Render(c.Title) + "\n\n" +
			msgStyle.Render(c.Message) + "\n\n" +
			strings.Join(rendered, "  "))
}
