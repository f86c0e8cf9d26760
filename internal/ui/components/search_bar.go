package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebyang/lazyjson/internal/ui/theme"
)

// FindMsg is sent when the query changes and matches need recomputing
type FindMsg struct {
	Query string
}

// FindNextMsg advances to the next match
type FindNextMsg struct{}

// FindPrevMsg goes back to the previous match
type FindPrevMsg struct{}

// ReplaceMsg replaces the current match
type ReplaceMsg struct {
	Query       string
	Replacement string
}

// ReplaceAllMsg replaces every match
type ReplaceAllMsg struct {
	Query       string
	Replacement string
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// SearchBar provides the find and replace input box
type SearchBar struct {
	FindInput    textinput.Model
	ReplaceInput textinput.Model
	ReplaceMode  bool
	Theme        theme.Theme
	Width        int
	Visible      bool

	// Match position shown as "current/total", set by the app after it
	// recomputes matches
	Current int
	Total   int

	focusReplace bool
}

// FindMatches returns the byte ranges of every non-overlapping occurrence
// of query in text, in document order
func FindMatches(text, query string) [][2]int {
	if query == "" {
		return nil
	}
	var matches [][2]int
	start := 0
	for {
		idx := strings.Index(text[start:], query)
		if idx < 0 {
			break
		}
		at := start + idx
		matches = append(matches, [2]int{at, at + len(query)})
		start = at + len(query)
	}
	return matches
}

// NewSearchBar creates a new search bar
func NewSearchBar(th theme.Theme) *SearchBar {
	find := textinput.New()
	find.Placeholder = "Find..."
	find.CharLimit = 256
	find.Width = 30

	repl := textinput.New()
	repl.Placeholder = "Replace with..."
	repl.CharLimit = 256
	repl.Width = 30

	return &SearchBar{
		FindInput:    find,
		ReplaceInput: repl,
		Theme:        th,
	}
}

// Open shows the bar, in find or replace mode, with focus on the query
func (s *SearchBar) Open(replaceMode bool) {
	s.Visible = true
	s.ReplaceMode = replaceMode
	s.focusReplace = false
	s.FindInput.Focus()
	s.ReplaceInput.Blur()
}

// Reset clears both inputs and the match counter
func (s *SearchBar) Reset() {
	s.FindInput.SetValue("")
	s.ReplaceInput.SetValue("")
	s.Current = 0
	s.Total = 0
	s.focusReplace = false
}

// Query returns the current find text
func (s *SearchBar) Query() string {
	return s.FindInput.Value()
}

// Update handles messages
func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if s.ReplaceMode {
				s.toggleFocus()
			}
			return s, nil

		case "enter":
			if s.Query() != "" {
				return s, func() tea.Msg {
					return FindNextMsg{}
				}
			}
			return s, nil

		case "ctrl+p":
			if s.Query() != "" {
				return s, func() tea.Msg {
					return FindPrevMsg{}
				}
			}
			return s, nil

		case "ctrl+r":
			if s.ReplaceMode && s.Query() != "" {
				query, repl := s.Query(), s.ReplaceInput.Value()
				return s, func() tea.Msg {
					return ReplaceMsg{Query: query, Replacement: repl}
				}
			}
			return s, nil

		case "alt+r":
			if s.ReplaceMode && s.Query() != "" {
				query, repl := s.Query(), s.ReplaceInput.Value()
				return s, func() tea.Msg {
					return ReplaceAllMsg{Query: query, Replacement: repl}
				}
			}
			return s, nil

		case "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	var cmd tea.Cmd
	if s.focusReplace {
		s.ReplaceInput, cmd = s.ReplaceInput.Update(msg)
		return s, cmd
	}

	before := s.FindInput.Value()
	s.FindInput, cmd = s.FindInput.Update(msg)
	if after := s.FindInput.Value(); after != before {
		return s, tea.Batch(cmd, func() tea.Msg {
			return FindMsg{Query: after}
		})
	}
	return s, cmd
}

func (s *SearchBar) toggleFocus() {
	s.focusReplace = !s.focusReplace
	if s.focusReplace {
		s.FindInput.Blur()
		s.ReplaceInput.Focus()
	} else {
		s.ReplaceInput.Blur()
		s.FindInput.Focus()
	}
}

// View renders the search bar
func (s *SearchBar) View() string {
	modeIndicator := "[Find]"
	modeColor := s.Theme.Success
	if s.ReplaceMode {
		modeIndicator = "[Replace]"
		modeColor = s.Theme.Info
	}

	modeStyle := lipgloss.NewStyle().
		Foreground(modeColor).
		Bold(true)

	countStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Comment)

	inputWidth := s.Width - 28
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.FindInput.Width = inputWidth
	s.ReplaceInput.Width = inputWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Width(s.Width)

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Comment).
		Italic(true)

	count := "no matches"
	if s.Total > 0 {
		count = fmt.Sprintf("%d/%d", s.Current+1, s.Total)
	}

	content := modeStyle.Render(modeIndicator) + " " + s.FindInput.View() +
		"  " + countStyle.Render(count)

	helpText := "Enter: next │ Ctrl+P: prev │ Esc: close"
	if s.ReplaceMode {
		content += "\n" + modeStyle.Render("   with ") + " " + s.ReplaceInput.View()
		helpText = "Tab: switch field │ Ctrl+R: replace │ Alt+R: replace all │ Esc: close"
	}

	return boxStyle.Render(content + "\n" + helpStyle.Render(helpText))
}
