package app

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/calebyang/lazyjson/internal/config"
	"github.com/calebyang/lazyjson/internal/models"
)

func newTestApp(t *testing.T, texts ...string) *App {
	t.Helper()
	a := New(config.GetDefaults(), nil, nil)
	for _, text := range texts {
		doc := models.NewDocumentFromText(text)
		if !a.tabs.Add(doc) {
			t.Fatalf("failed to add document %q", text)
		}
	}
	a.syncActiveDocument(true)
	return a
}

func TestReplaceCurrentAdvancesToNextMatch(t *testing.T) {
	a := newTestApp(t, `{"a":"x","b":"x","c":"x"}`)
	doc := a.tabs.Active()

	a.recomputeMatches("x")
	if len(a.matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(a.matches))
	}
	a.matchIdx = 1

	a.replaceCurrent("x", "y")

	if doc.Text != `{"a":"x","b":"y","c":"x"}` {
		t.Errorf("expected second match replaced, got %q", doc.Text)
	}
	if len(a.matches) != 2 {
		t.Fatalf("expected 2 remaining matches, got %d", len(a.matches))
	}
	// The cursor stays in place so the match after the replaced one is
	// current, not the first match in the document
	if a.matchIdx != 1 {
		t.Errorf("expected matchIdx 1 after replace, got %d", a.matchIdx)
	}
}

func TestReplaceCurrentClampsAtEnd(t *testing.T) {
	a := newTestApp(t, `{"a":"x","b":"x"}`)

	a.recomputeMatches("x")
	a.matchIdx = 1

	a.replaceCurrent("x", "y")

	if len(a.matches) != 1 {
		t.Fatalf("expected 1 remaining match, got %d", len(a.matches))
	}
	if a.matchIdx != 0 {
		t.Errorf("expected matchIdx clamped to 0, got %d", a.matchIdx)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	a := newTestApp(t, `{"a": 1}`)
	doc := a.tabs.Active()
	doc.SetText(`{"a": 2}`)

	a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if doc.Text != `{"a": 1}` {
		t.Errorf("expected text restored by undo, got %q", doc.Text)
	}
	if a.editor.Text() != doc.Text {
		t.Errorf("editor out of sync after undo: %q", a.editor.Text())
	}

	a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlY})
	if doc.Text != `{"a": 2}` {
		t.Errorf("expected text reapplied by redo, got %q", doc.Text)
	}
	if a.editor.Text() != doc.Text {
		t.Errorf("editor out of sync after redo: %q", a.editor.Text())
	}
}

func TestUndoWithNoHistoryShowsStatus(t *testing.T) {
	a := newTestApp(t, `{"a": 1}`)

	a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if a.statusMsg != "Nothing to undo" {
		t.Errorf("expected empty-history status, got %q", a.statusMsg)
	}
	if got := a.tabs.Active().Text; got != `{"a": 1}` {
		t.Errorf("text changed unexpectedly: %q", got)
	}
}

func TestTabSwitchResetsTreeExpansion(t *testing.T) {
	a := newTestApp(t, `{"a": {"b": 1}}`, `{"a": {"b": 2}}`)

	// Adding activates the last tab; go back to the first and expand $.a
	a.tabs.SetActive(0)
	a.syncActiveDocument(true)
	if node := a.treeView.SelectOffset(12); node == nil || node.Key != "b" {
		t.Fatalf("SelectOffset did not reach the nested value, got %v", node)
	}

	keyG := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}
	a.treeView.Update(keyG)
	if a.treeView.CursorIndex != 2 {
		t.Fatalf("expected 3 visible rows before switching, cursor at %d", a.treeView.CursorIndex)
	}

	a.tabs.SetActive(1)
	a.syncActiveDocument(true)

	// The second document has the same paths but starts collapsed
	a.treeView.Update(keyG)
	if a.treeView.CursorIndex != 1 {
		t.Errorf("expansion leaked across tabs, cursor at %d", a.treeView.CursorIndex)
	}
}

func TestFormatStatusBarMultibyte(t *testing.T) {
	a := newTestApp(t)
	a.state.Width = 24
	avail := a.state.Width - 4

	got := a.formatStatusBar("lazyjson │ héllo wörld énd", "✗ trünc")
	if !utf8.ValidString(got) {
		t.Errorf("status bar is not valid UTF-8: %q", got)
	}
	if w := runewidth.StringWidth(got); w > avail {
		t.Errorf("status bar width %d exceeds available %d: %q", w, avail, got)
	}
	if !strings.HasSuffix(got, "✗ trünc") {
		t.Errorf("right side lost during truncation: %q", got)
	}
}

func TestFormatStatusBarPadsToWidth(t *testing.T) {
	a := newTestApp(t)
	a.state.Width = 40

	got := a.formatStatusBar("léft", "ríght")
	if w := runewidth.StringWidth(got); w != a.state.Width-4 {
		t.Errorf("expected padded width %d, got %d: %q", a.state.Width-4, w, got)
	}
	if !strings.HasPrefix(got, "léft") || !strings.HasSuffix(got, "ríght") {
		t.Errorf("sides misplaced: %q", got)
	}
}
