package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/calebyang/lazyjson/internal/models"
	"github.com/calebyang/lazyjson/internal/ui/theme"
)

const MaxDocTabs = 10

// DocTabs manages the open documents and the tab bar above the panels.
// Unsaved documents show a "*" marker on their tab.
type DocTabs struct {
	docs      []*models.Document
	activeIdx int
	Theme     theme.Theme
}

// NewDocTabs creates a new tab manager
func NewDocTabs(th theme.Theme) *DocTabs {
	return &DocTabs{
		docs:  []*models.Document{},
		Theme: th,
	}
}

// Add appends a document as the rightmost tab and activates it. Returns
// false when the tab limit is reached.
func (dt *DocTabs) Add(doc *models.Document) bool {
	if len(dt.docs) >= MaxDocTabs {
		return false
	}
	dt.docs = append(dt.docs, doc)
	dt.activeIdx = len(dt.docs) - 1
	return true
}

// Active returns the currently active document
func (dt *DocTabs) Active() *models.Document {
	if len(dt.docs) == 0 || dt.activeIdx < 0 || dt.activeIdx >= len(dt.docs) {
		return nil
	}
	return dt.docs[dt.activeIdx]
}

// ActiveIndex returns the index of the active tab, -1 when empty
func (dt *DocTabs) ActiveIndex() int {
	if len(dt.docs) == 0 {
		return -1
	}
	return dt.activeIdx
}

// Documents returns all open documents in tab order
func (dt *DocTabs) Documents() []*models.Document {
	return dt.docs
}

// Count returns the number of open tabs
func (dt *DocTabs) Count() int {
	return len(dt.docs)
}

// HasTabs returns whether any document is open
func (dt *DocTabs) HasTabs() bool {
	return len(dt.docs) > 0
}

// SetActive activates the tab at the given index
func (dt *DocTabs) SetActive(idx int) {
	if idx >= 0 && idx < len(dt.docs) {
		dt.activeIdx = idx
	}
}

// NextTab switches to the next tab
func (dt *DocTabs) NextTab() {
	if len(dt.docs) > 0 {
		dt.activeIdx = (dt.activeIdx + 1) % len(dt.docs)
	}
}

// PrevTab switches to the previous tab
func (dt *DocTabs) PrevTab() {
	if len(dt.docs) > 0 {
		dt.activeIdx = (dt.activeIdx - 1 + len(dt.docs)) % len(dt.docs)
	}
}

// CloseActive removes the active tab and returns the closed document, nil
// when there is nothing to close. The tab to the left becomes active.
func (dt *DocTabs) CloseActive() *models.Document {
	doc := dt.Active()
	if doc == nil {
		return nil
	}

	dt.docs = append(dt.docs[:dt.activeIdx], dt.docs[dt.activeIdx+1:]...)
	if dt.activeIdx >= len(dt.docs) {
		dt.activeIdx = len(dt.docs) - 1
	}
	if dt.activeIdx < 0 {
		dt.activeIdx = 0
	}
	return doc
}

// FindByPath returns the index of the tab holding a file, -1 when the
// file is not open
func (dt *DocTabs) FindByPath(path string) int {
	for i, doc := range dt.docs {
		if doc.Path != "" && doc.Path == path {
			return i
		}
	}
	return -1
}

// AnyDirty reports whether any open document has unsaved changes
func (dt *DocTabs) AnyDirty() bool {
	for _, doc := range dt.docs {
		if doc.Dirty {
			return true
		}
	}
	return false
}

// RenderTabBar renders the tab bar
func (dt *DocTabs) RenderTabBar(width int) string {
	if len(dt.docs) == 0 {
		return ""
	}

	var tabViews []string

	for i, doc := range dt.docs {
		title := doc.Title()
		if doc.Dirty {
			title += "*"
		}
		label := fmt.Sprintf("[%d] %s", i+1, title)

		maxLabelLen := width / MaxDocTabs
		if maxLabelLen < 12 {
			maxLabelLen = 12
		}
		if runewidth.StringWidth(label) > maxLabelLen {
			label = runewidth.Truncate(label, maxLabelLen-1, "…")
		}

		var style lipgloss.Style
		if i == dt.activeIdx {
			style = lipgloss.NewStyle().
				Foreground(dt.Theme.Background).
				Background(dt.Theme.Info).
				Bold(true).
				Padding(0, 1)
		} else {
			style = lipgloss.NewStyle().
				Foreground(dt.Theme.Foreground).
				Background(dt.Theme.Selection).
				Padding(0, 1)
		}

		tabViews = append(tabViews, style.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabViews...)
}
