package components

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebyang/lazyjson/internal/ui/theme"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		text  string
		query string
		want  [][2]int
	}{
		{`{"a": 1, "b": 1}`, "1", [][2]int{{6, 7}, {14, 15}}},
		{`{"name": "name"}`, "name", [][2]int{{2, 6}, {10, 14}}},
		{"aaaa", "aa", [][2]int{{0, 2}, {2, 4}}},
		{"abc", "x", nil},
		{"abc", "", nil},
	}

	for _, tt := range tests {
		got := FindMatches(tt.text, tt.query)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FindMatches(%q, %q) = %v, want %v", tt.text, tt.query, got, tt.want)
		}
	}
}

func TestSearchBarEmitsFindOnTyping(t *testing.T) {
	s := NewSearchBar(theme.DefaultTheme())
	s.Open(false)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd == nil {
		t.Fatal("expected a command after typing")
	}

	found := false
	collectMsgs(t, cmd(), func(msg tea.Msg) {
		if m, ok := msg.(FindMsg); ok {
			if m.Query != "a" {
				t.Errorf("FindMsg query = %q, want a", m.Query)
			}
			found = true
		}
	})
	if !found {
		t.Error("no FindMsg emitted after typing")
	}
}

// collectMsgs walks a message that may be a batch
func collectMsgs(t *testing.T, msg tea.Msg, fn func(tea.Msg)) {
	t.Helper()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			if cmd != nil {
				collectMsgs(t, cmd(), fn)
			}
		}
		return
	}
	fn(msg)
}

func TestSearchBarEnterEmitsNext(t *testing.T) {
	s := NewSearchBar(theme.DefaultTheme())
	s.Open(false)
	s.FindInput.SetValue("foo")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(FindNextMsg); !ok {
		t.Error("expected FindNextMsg on enter")
	}
}

func TestSearchBarReplaceAll(t *testing.T) {
	s := NewSearchBar(theme.DefaultTheme())
	s.Open(true)
	s.FindInput.SetValue("old")
	s.ReplaceInput.SetValue("new")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r"), Alt: true})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, ok := cmd().(ReplaceAllMsg)
	if !ok {
		t.Fatal("expected ReplaceAllMsg on alt+r")
	}
	if m.Query != "old" || m.Replacement != "new" {
		t.Errorf("ReplaceAllMsg = %+v", m)
	}
}

func TestSearchBarEscCloses(t *testing.T) {
	s := NewSearchBar(theme.DefaultTheme())
	s.Open(false)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CloseSearchMsg); !ok {
		t.Error("expected CloseSearchMsg on esc")
	}
}
