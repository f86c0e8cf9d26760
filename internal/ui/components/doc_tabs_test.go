package components

import (
	"testing"

	"github.com/calebyang/lazyjson/internal/models"
	"github.com/calebyang/lazyjson/internal/ui/theme"
)

func TestDocTabsAddAndActivate(t *testing.T) {
	dt := NewDocTabs(theme.DefaultTheme())
	if dt.HasTabs() {
		t.Fatal("new tab manager should be empty")
	}

	a := models.NewDocumentFromText(`{}`)
	b := models.NewDocumentFromText(`[]`)
	dt.Add(a)
	dt.Add(b)

	if dt.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", dt.Count())
	}
	if dt.Active() != b {
		t.Error("newest tab should be active")
	}
}

func TestDocTabsCycle(t *testing.T) {
	dt := NewDocTabs(theme.DefaultTheme())
	a := models.NewDocumentFromText(`1`)
	b := models.NewDocumentFromText(`2`)
	c := models.NewDocumentFromText(`3`)
	dt.Add(a)
	dt.Add(b)
	dt.Add(c)

	dt.NextTab()
	if dt.Active() != a {
		t.Error("NextTab from last should wrap to first")
	}
	dt.PrevTab()
	if dt.Active() != c {
		t.Error("PrevTab from first should wrap to last")
	}
}

func TestDocTabsCloseActive(t *testing.T) {
	dt := NewDocTabs(theme.DefaultTheme())
	a := models.NewDocumentFromText(`1`)
	b := models.NewDocumentFromText(`2`)
	dt.Add(a)
	dt.Add(b)

	closed := dt.CloseActive()
	if closed != b {
		t.Error("CloseActive should return the active document")
	}
	if dt.Active() != a {
		t.Error("previous tab should become active")
	}

	dt.CloseActive()
	if dt.HasTabs() {
		t.Error("all tabs closed but HasTabs still true")
	}
	if dt.CloseActive() != nil {
		t.Error("CloseActive on empty manager should return nil")
	}
}

func TestDocTabsLimit(t *testing.T) {
	dt := NewDocTabs(theme.DefaultTheme())
	for i := 0; i < MaxDocTabs; i++ {
		if !dt.Add(models.NewDocumentFromText(`{}`)) {
			t.Fatalf("Add failed below the limit at %d", i)
		}
	}
	if dt.Add(models.NewDocumentFromText(`{}`)) {
		t.Error("Add should fail past the tab limit")
	}
}

func TestDocTabsFindByPath(t *testing.T) {
	dt := NewDocTabs(theme.DefaultTheme())
	a := models.NewDocumentFromText(`{}`)
	a.Path = "/tmp/a.json"
	dt.Add(a)
	dt.Add(models.NewDocumentFromText(`{}`))

	if got := dt.FindByPath("/tmp/a.json"); got != 0 {
		t.Errorf("FindByPath = %d, want 0", got)
	}
	if got := dt.FindByPath("/tmp/missing.json"); got != -1 {
		t.Errorf("FindByPath for missing = %d, want -1", got)
	}

	// Untitled documents have no path and never match
	if got := dt.FindByPath(""); got != -1 {
		t.Errorf("FindByPath(\"\") = %d, want -1", got)
	}
}
