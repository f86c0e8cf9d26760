package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebyang/lazyjson/internal/ui/theme"
)

// PromptKind distinguishes what the path prompt is asking for
type PromptKind int

const (
	PromptOpen PromptKind = iota
	PromptSaveAs
)

// PromptSubmitMsg carries the entered path
type PromptSubmitMsg struct {
	Kind PromptKind
	Path string
}

// PromptCancelMsg is sent when the prompt is dismissed
type PromptCancelMsg struct{}

// PathPrompt asks for a file path, for opening a file or saving under a
// new name
type PathPrompt struct {
	Input   textinput.Model
	Kind    PromptKind
	Theme   theme.Theme
	Width   int
	Visible bool

	// Recent file paths offered when opening; up/down cycles them into
	// the input
	Recent    []string
	recentIdx int
}

// NewPathPrompt creates a new path prompt
func NewPathPrompt(th theme.Theme) *PathPrompt {
	ti := textinput.New()
	ti.Placeholder = "path/to/file.json"
	ti.CharLimit = 512
	ti.Width = 50

	return &PathPrompt{
		Input: ti,
		Theme: th,
	}
}

// Open shows the prompt pre-filled with an initial path
func (p *PathPrompt) Open(kind PromptKind, initial string) {
	p.Kind = kind
	p.Visible = true
	p.recentIdx = -1
	p.Input.SetValue(initial)
	p.Input.CursorEnd()
	p.Input.Focus()
}

// Update handles messages
func (p *PathPrompt) Update(msg tea.Msg) (*PathPrompt, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			path := p.Input.Value()
			if path == "" {
				return p, nil
			}
			kind := p.Kind
			return p, func() tea.Msg {
				return PromptSubmitMsg{Kind: kind, Path: path}
			}
		case "esc":
			return p, func() tea.Msg {
				return PromptCancelMsg{}
			}
		case "down":
			p.cycleRecent(1)
			return p, nil
		case "up":
			p.cycleRecent(-1)
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.Input, cmd = p.Input.Update(msg)
	return p, cmd
}

// cycleRecent fills the input with the next or previous recent path
func (p *PathPrompt) cycleRecent(delta int) {
	if len(p.Recent) == 0 {
		return
	}
	if p.recentIdx < 0 {
		if delta > 0 {
			p.recentIdx = 0
		} else {
			p.recentIdx = len(p.Recent) - 1
		}
	} else {
		p.recentIdx = (p.recentIdx + delta + len(p.Recent)) % len(p.Recent)
	}
	p.Input.SetValue(p.Recent[p.recentIdx])
	p.Input.CursorEnd()
}

// View renders the prompt box
func (p *PathPrompt) View() string {
	title := "Open file"
	if p.Kind == PromptSaveAs {
		title = "Save as"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Info).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Comment).
		Italic(true)

	inputWidth := p.Width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.Input.Width = inputWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Theme.BorderFocused).
		Padding(0, 1).
		Width(p.Width)

	content := titleStyle.Render(title) + "\n" + p.Input.View() + "\n"

	if p.Kind == PromptOpen && len(p.Recent) > 0 {
		recentStyle := lipgloss.NewStyle().Foreground(p.Theme.Comment)
		content += recentStyle.Render("Recent:") + "\n"
		for i, path := range p.Recent {
			line := "  " + path
			if i == p.recentIdx {
				line = lipgloss.NewStyle().
					Foreground(p.Theme.Info).
					Render("> " + path)
			} else {
				line = recentStyle.Render(line)
			}
			content += line + "\n"
		}
	}

	return boxStyle.Render(content +
		helpStyle.Render("Enter: confirm │ ↑↓: recent │ Esc: cancel"))
}
