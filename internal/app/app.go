package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/calebyang/lazyjson/internal/config"
	"github.com/calebyang/lazyjson/internal/jsondoc"
	"github.com/calebyang/lazyjson/internal/models"
	"github.com/calebyang/lazyjson/internal/session"
	"github.com/calebyang/lazyjson/internal/ui/components"
	"github.com/calebyang/lazyjson/internal/ui/help"
	"github.com/calebyang/lazyjson/internal/ui/theme"
	"github.com/calebyang/lazyjson/internal/watcher"
)

// Confirm dialog tags identify the pending action when the user answers
const (
	confirmTagClose  = "close-tab"
	confirmTagQuit   = "quit"
	confirmTagReload = "reload"
)

const statusTimeout = 4 * time.Second

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme

	leftPanel  components.Panel
	rightPanel components.Panel

	tabs         *components.DocTabs
	treeView     *components.TreeView
	editor       *components.Editor
	searchBar    *components.SearchBar
	prompt       *components.PathPrompt
	confirm      *components.ConfirmDialog
	errorOverlay *components.ErrorOverlay

	store   *session.Store
	fw      *watcher.Watcher
	showErr bool

	// Document whose tree expansion state the tree view currently holds
	activeDocID uuid.UUID

	// Transient status bar message
	statusMsg string
	statusErr bool
	statusSeq int

	// Search state for the active document
	lastQuery string
	matches   [][2]int
	matchIdx  int

	// Action resumed after a save-as prompt for an untitled document
	afterSaveAs string

	// File waiting on a reload confirmation
	pendingReload string
}

// FileChangedMsg reports an external modification to an open file
type FileChangedMsg struct {
	Path string
}

// statusExpiredMsg clears a transient status message
type statusExpiredMsg struct {
	seq int
}

// New creates the application model. files are opened as initial tabs;
// when empty, the previous session is restored from the store.
func New(cfg *config.Config, store *session.Store, files []string) *App {
	state := models.NewAppState()

	themeName := "default"
	if cfg != nil && cfg.UI.Theme != "" {
		themeName = cfg.UI.Theme
	}
	if store != nil {
		if saved, err := store.Theme(); err == nil && saved != "" {
			themeName = saved
		}
		if dir, err := store.LastDir(); err == nil && dir != "" {
			state.LastDir = dir
		}
	}
	state.ThemeName = themeName
	th := theme.GetTheme(themeName)

	if cfg != nil && cfg.UI.PanelWidthRatio > 0 && cfg.UI.PanelWidthRatio < 100 {
		state.LeftPanelWidth = cfg.UI.PanelWidthRatio
	}

	fw, err := watcher.New()
	if err != nil {
		log.Warn("file watcher unavailable", "error", err)
		fw = nil
	}

	a := &App{
		state:        state,
		config:       cfg,
		theme:        th,
		tabs:         components.NewDocTabs(th),
		treeView:     components.NewTreeView(th),
		editor:       components.NewEditor(th),
		searchBar:    components.NewSearchBar(th),
		prompt:       components.NewPathPrompt(th),
		confirm:      components.NewConfirmDialog(th),
		errorOverlay: components.NewErrorOverlay(th),
		store:        store,
		fw:           fw,
		leftPanel: components.Panel{
			Title: "Tree",
			Style: lipgloss.NewStyle().BorderForeground(th.Border),
		},
		rightPanel: components.Panel{
			Title: "Editor",
			Style: lipgloss.NewStyle().BorderForeground(th.BorderFocused),
		},
	}

	if cfg != nil && cfg.Editor.IndentWidth > 0 {
		a.editor.IndentWidth = cfg.Editor.IndentWidth
	}

	restoreActive := -1
	if len(files) == 0 && store != nil && cfg != nil && cfg.Session.RestoreTabs {
		if paths, active, err := store.OpenFiles(); err == nil && len(paths) > 0 {
			files = paths
			restoreActive = active
		}
	}

	for _, path := range files {
		if err := a.openFile(path); err != nil {
			log.Error("failed to open file", "path", path, "error", err)
		}
	}
	if restoreActive >= 0 {
		a.tabs.SetActive(restoreActive)
	}
	a.syncActiveDocument(true)

	a.updatePanelDimensions()
	a.updatePanelStyles()

	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.waitForFileEvent()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
		return a, nil

	case components.ContentChangedMsg:
		return a, a.applyEdit()

	case components.EditDoneMsg:
		return a, nil

	case components.NodeSelectedMsg:
		if msg.Node != nil {
			a.editor.SetSelection(msg.Node.Start, msg.Node.End)
			a.state.FocusedPanel = models.EditorPanel
			a.updatePanelStyles()
		}
		return a, nil

	case components.CopyDoneMsg:
		if msg.Err != nil {
			return a, a.setStatus(fmt.Sprintf("Copy failed: %v", msg.Err), true)
		}
		return a, a.setStatus("Copied "+msg.Label, false)

	case components.FindMsg:
		a.recomputeMatches(msg.Query)
		a.applyMatches()
		return a, nil

	case components.FindNextMsg:
		return a, a.stepMatch(1)

	case components.FindPrevMsg:
		return a, a.stepMatch(-1)

	case components.ReplaceMsg:
		return a, a.replaceCurrent(msg.Query, msg.Replacement)

	case components.ReplaceAllMsg:
		return a, a.replaceAll(msg.Query, msg.Replacement)

	case components.CloseSearchMsg:
		a.closeSearch()
		return a, nil

	case components.PromptSubmitMsg:
		return a.handlePromptSubmit(msg)

	case components.PromptCancelMsg:
		a.prompt.Visible = false
		a.state.ViewMode = models.NormalMode
		return a, nil

	case components.ConfirmResultMsg:
		return a.handleConfirmResult(msg)

	case components.GoToErrorMsg:
		a.showErr = false
		a.editor.GoToLineColumn(msg.Line, msg.Column)
		a.state.FocusedPanel = models.EditorPanel
		a.updatePanelStyles()
		return a, nil

	case components.CloseErrorOverlayMsg:
		a.showErr = false
		return a, nil

	case FileChangedMsg:
		return a, tea.Batch(a.handleFileChanged(msg.Path), a.waitForFileEvent())

	case statusExpiredMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil
	}

	return a, nil
}

// handleKey routes keyboard input to the active overlay or panel
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, a.requestQuit()
	}

	if a.confirm.Visible {
		var cmd tea.Cmd
		a.confirm, cmd = a.confirm.Update(msg)
		return a, cmd
	}

	if a.showErr {
		var cmd tea.Cmd
		a.errorOverlay, cmd = a.errorOverlay.Update(msg)
		return a, cmd
	}

	if a.prompt.Visible {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}

	if a.state.ViewMode == models.SearchMode {
		var cmd tea.Cmd
		a.searchBar, cmd = a.searchBar.Update(msg)
		return a, cmd
	}

	if a.state.ViewMode == models.HelpMode {
		switch msg.String() {
		case "?", "esc", "q":
			a.state.ViewMode = models.NormalMode
		}
		return a, nil
	}

	// Edit mode owns the keyboard except for save and undo/redo
	if !a.editor.ReadOnly && a.state.FocusedPanel == models.EditorPanel {
		switch msg.String() {
		case "ctrl+s":
			return a, a.saveActive()
		case "ctrl+z":
			return a, a.undoActive()
		case "ctrl+y":
			return a, a.redoActive()
		}
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	}

	return a.handleNormalKey(msg)
}

// handleNormalKey handles key events in normal mode
func (a *App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, a.requestQuit()

	case "?":
		a.state.ViewMode = models.HelpMode

	case "tab":
		if a.state.FocusedPanel == models.TreePanel {
			a.state.FocusedPanel = models.EditorPanel
		} else {
			a.state.FocusedPanel = models.TreePanel
		}
		a.updatePanelStyles()

	case "ctrl+n":
		return a, a.newDocument()

	case "ctrl+o":
		a.openPrompt(components.PromptOpen)

	case "ctrl+s":
		return a, a.saveActive()

	case "alt+s":
		if a.tabs.Active() != nil {
			a.openPrompt(components.PromptSaveAs)
		}

	case "ctrl+w":
		return a, a.requestCloseTab()

	case "ctrl+z":
		return a, a.undoActive()

	case "ctrl+y":
		return a, a.redoActive()

	case "]":
		a.tabs.NextTab()
		a.syncActiveDocument(true)

	case "[":
		a.tabs.PrevTab()
		a.syncActiveDocument(true)

	case "t":
		return a, a.cycleTheme()

	case "p":
		return a, a.formatActive(jsondoc.ModePretty)

	case "m":
		return a, a.formatActive(jsondoc.ModeMinify)

	case "f":
		a.openSearch(false)

	case "r":
		a.openSearch(true)

	case "E":
		if doc := a.tabs.Active(); doc != nil && doc.ParseErr != nil {
			a.errorOverlay.Open(doc.ParseErr)
			a.showErr = true
		}

	default:
		if a.state.FocusedPanel == models.TreePanel {
			var cmd tea.Cmd
			a.treeView, cmd = a.treeView.Update(msg)
			return a, cmd
		}
		if a.tabs.Active() != nil {
			var cmd tea.Cmd
			a.editor, cmd = a.editor.Update(msg)
			a.syncTreeToCursor()
			return a, cmd
		}
	}

	return a, nil
}

// syncTreeToCursor keeps the tree cursor on the node enclosing the editor
// cursor while browsing
func (a *App) syncTreeToCursor() {
	doc := a.tabs.Active()
	if doc == nil || doc.Tree == nil || !a.editor.ReadOnly {
		return
	}
	a.treeView.SelectOffset(a.editor.CursorOffset())
}

// applyEdit pushes the editor buffer into the active document and rebuilds
// the tree
func (a *App) applyEdit() tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	doc.SetText(a.editor.Text())
	a.treeView.SetTree(doc.Tree, doc.ParseErr)
	a.matches = nil
	a.lastQuery = ""
	return nil
}

// syncActiveDocument loads the active document into the editor and tree.
// resetCursor moves the editor cursor to the top. Switching documents
// drops the tree expansion state so it never bleeds across tabs.
func (a *App) syncActiveDocument(resetCursor bool) {
	doc := a.tabs.Active()
	if doc == nil {
		if a.activeDocID != uuid.Nil {
			a.treeView.ResetExpansion()
			a.activeDocID = uuid.Nil
		}
		a.editor.SetText("", true)
		a.treeView.SetTree(nil, nil)
		return
	}
	if doc.ID != a.activeDocID {
		a.treeView.ResetExpansion()
		a.activeDocID = doc.ID
	}
	a.editor.SetText(doc.Text, resetCursor)
	a.treeView.SetTree(doc.Tree, doc.ParseErr)
	a.matches = nil
	a.lastQuery = ""
}

// undoActive reverts the active document to its previous text
func (a *App) undoActive() tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	if !doc.Undo() {
		return a.setStatus("Nothing to undo", true)
	}
	a.editor.SetText(doc.Text, false)
	a.treeView.SetTree(doc.Tree, doc.ParseErr)
	a.matches = nil
	a.lastQuery = ""
	return nil
}

// redoActive reapplies the most recently undone change
func (a *App) redoActive() tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	if !doc.Redo() {
		return a.setStatus("Nothing to redo", true)
	}
	a.editor.SetText(doc.Text, false)
	a.treeView.SetTree(doc.Tree, doc.ParseErr)
	a.matches = nil
	a.lastQuery = ""
	return nil
}

// newDocument opens an empty untitled tab
func (a *App) newDocument() tea.Cmd {
	doc := models.NewDocumentFromText("{}")
	if !a.tabs.Add(doc) {
		return a.setStatus(fmt.Sprintf("Tab limit reached (%d)", components.MaxDocTabs), true)
	}
	a.syncActiveDocument(true)
	return nil
}

// openFile loads a file into a new tab, or activates its existing tab
func (a *App) openFile(path string) error {
	if idx := a.tabs.FindByPath(path); idx >= 0 {
		a.tabs.SetActive(idx)
		a.syncActiveDocument(true)
		return nil
	}

	doc, err := models.LoadDocument(path)
	if err != nil {
		return err
	}
	if !a.tabs.Add(doc) {
		return fmt.Errorf("tab limit reached (%d)", components.MaxDocTabs)
	}

	if a.fw != nil {
		if err := a.fw.Add(path); err != nil {
			log.Warn("cannot watch file", "path", path, "error", err)
		}
	}
	a.touchRecent(path)
	a.state.LastDir = filepath.Dir(path)
	a.syncActiveDocument(true)
	log.Info("opened file", "path", path)
	return nil
}

// saveActive saves the active document, falling back to a save-as prompt
// for untitled documents
func (a *App) saveActive() tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	if doc.Path == "" {
		a.openPrompt(components.PromptSaveAs)
		return nil
	}

	if a.config != nil && a.config.Editor.FormatOnSave && doc.Valid() {
		a.reformat(doc, jsondoc.ModePretty)
	}

	if err := doc.Save(); err != nil {
		log.Error("save failed", "path", doc.Path, "error", err)
		return a.setStatus(fmt.Sprintf("Save failed: %v", err), true)
	}
	log.Info("saved file", "path", doc.Path)
	return a.setStatus("Saved "+doc.Title(), false)
}

// requestCloseTab closes the active tab, asking about unsaved changes first
func (a *App) requestCloseTab() tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	if doc.Dirty {
		a.confirm.Open(confirmTagClose,
			"Unsaved changes",
			fmt.Sprintf("%q has unsaved changes. Save before closing?", doc.Title()),
			"Save", "Discard")
		return nil
	}
	a.closeActiveTab()
	return nil
}

func (a *App) closeActiveTab() {
	doc := a.tabs.CloseActive()
	if doc != nil && doc.Path != "" && a.fw != nil {
		a.fw.Remove(doc.Path)
	}
	a.syncActiveDocument(true)
}

// requestQuit quits, asking about unsaved changes first
func (a *App) requestQuit() tea.Cmd {
	if a.tabs.AnyDirty() {
		a.confirm.Open(confirmTagQuit,
			"Unsaved changes",
			"Some documents have unsaved changes. Save the active one before quitting?",
			"Save", "Discard")
		return nil
	}
	return a.quit()
}

// quit persists the session and exits
func (a *App) quit() tea.Cmd {
	a.saveSession()
	if a.fw != nil {
		_ = a.fw.Close()
	}
	return tea.Quit
}

// saveSession stores the open files, theme and last directory
func (a *App) saveSession() {
	if a.store == nil {
		return
	}
	if a.config != nil && !a.config.Session.Enabled {
		return
	}

	var paths []string
	active := -1
	for i, doc := range a.tabs.Documents() {
		if doc.Path == "" {
			continue
		}
		paths = append(paths, doc.Path)
		if i == a.tabs.ActiveIndex() {
			active = len(paths) - 1
		}
	}

	if err := a.store.SaveOpenFiles(paths, active); err != nil {
		log.Error("failed to save session", "error", err)
	}
	if err := a.store.SaveTheme(a.state.ThemeName); err != nil {
		log.Error("failed to save theme", "error", err)
	}
	if a.state.LastDir != "" {
		if err := a.store.SaveLastDir(a.state.LastDir); err != nil {
			log.Error("failed to save last dir", "error", err)
		}
	}
}

func (a *App) touchRecent(path string) {
	if a.store == nil {
		return
	}
	maxRecent := 20
	if a.config != nil && a.config.Session.MaxRecent > 0 {
		maxRecent = a.config.Session.MaxRecent
	}
	if err := a.store.TouchRecent(path, maxRecent); err != nil {
		log.Error("failed to record recent file", "path", path, "error", err)
	}
}

// formatActive rewrites the active document through the formatter
func (a *App) formatActive(mode jsondoc.Mode) tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	if !doc.Valid() {
		a.errorOverlay.Open(doc.ParseErr)
		a.showErr = true
		return a.setStatus("Cannot format invalid JSON", true)
	}

	a.reformat(doc, mode)
	a.syncActiveDocument(true)

	if mode == jsondoc.ModeMinify {
		return a.setStatus("Minified", false)
	}
	return a.setStatus("Formatted", false)
}

// reformat rewrites a document's text from its tree, preserving key order
// and scalar spellings
func (a *App) reformat(doc *models.Document, mode jsondoc.Mode) {
	indent := jsondoc.DefaultIndent
	if a.config != nil && a.config.Editor.IndentWidth > 0 {
		indent = a.config.Editor.IndentWidth
	}
	doc.SetText(jsondoc.FormatTree(doc.Tree, mode, indent))
}

// openSearch shows the find bar, optionally with the replace field
func (a *App) openSearch(replaceMode bool) {
	if a.tabs.Active() == nil {
		return
	}
	a.searchBar.Reset()
	a.searchBar.Open(replaceMode)
	a.state.ViewMode = models.SearchMode
}

func (a *App) closeSearch() {
	a.searchBar.Visible = false
	a.state.ViewMode = models.NormalMode
	a.editor.ClearMatches()
	a.matches = nil
	a.lastQuery = ""
	a.searchBar.Current = 0
	a.searchBar.Total = 0
}

// recomputeMatches rebuilds the match list for a query against the active
// document
func (a *App) recomputeMatches(query string) {
	a.lastQuery = query
	a.matches = nil
	a.matchIdx = 0

	doc := a.tabs.Active()
	if doc == nil || query == "" {
		return
	}
	a.matches = components.FindMatches(doc.Text, query)
}

// applyMatches pushes the current matches into the editor and search bar
func (a *App) applyMatches() {
	a.searchBar.Total = len(a.matches)
	a.searchBar.Current = a.matchIdx

	if len(a.matches) == 0 {
		a.editor.ClearMatches()
		return
	}
	if a.matchIdx >= len(a.matches) {
		a.matchIdx = 0
		a.searchBar.Current = 0
	}
	a.editor.SetMatches(a.matches, a.matchIdx)
}

// stepMatch advances the current match by delta with wraparound
func (a *App) stepMatch(delta int) tea.Cmd {
	if len(a.matches) == 0 {
		return a.setStatus("No matches", true)
	}
	a.matchIdx = (a.matchIdx + delta + len(a.matches)) % len(a.matches)
	a.applyMatches()
	return nil
}

// replaceCurrent replaces the match under the cursor and moves to the next
func (a *App) replaceCurrent(query, replacement string) tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	if a.lastQuery != query {
		a.recomputeMatches(query)
	}
	if len(a.matches) == 0 {
		return a.setStatus("No matches", true)
	}

	m := a.matches[a.matchIdx]
	doc.SetText(doc.Text[:m[0]] + replacement + doc.Text[m[1]:])
	a.editor.SetText(doc.Text, false)
	a.treeView.SetTree(doc.Tree, doc.ParseErr)

	// Stay at the same position so the next remaining match becomes
	// current, instead of jumping back to the first one
	oldIdx := a.matchIdx
	a.recomputeMatches(query)
	if oldIdx < len(a.matches) {
		a.matchIdx = oldIdx
	}
	a.applyMatches()
	return nil
}

// replaceAll replaces every match at once
func (a *App) replaceAll(query, replacement string) tea.Cmd {
	doc := a.tabs.Active()
	if doc == nil {
		return nil
	}
	count := len(components.FindMatches(doc.Text, query))
	if count == 0 {
		return a.setStatus("No matches", true)
	}

	doc.SetText(strings.ReplaceAll(doc.Text, query, replacement))
	a.editor.SetText(doc.Text, false)
	a.treeView.SetTree(doc.Tree, doc.ParseErr)

	a.recomputeMatches(query)
	a.applyMatches()
	return a.setStatus(fmt.Sprintf("Replaced %d occurrences", count), false)
}

// openPrompt shows the path prompt for opening or saving
func (a *App) openPrompt(kind components.PromptKind) {
	initial := ""
	a.prompt.Recent = nil
	switch kind {
	case components.PromptOpen:
		if a.state.LastDir != "" {
			initial = a.state.LastDir + string(filepath.Separator)
		}
		if a.store != nil {
			if recents, err := a.store.RecentFiles(5); err == nil {
				for _, r := range recents {
					a.prompt.Recent = append(a.prompt.Recent, r.Path)
				}
			}
		}
	case components.PromptSaveAs:
		if doc := a.tabs.Active(); doc != nil && doc.Path != "" {
			initial = doc.Path
		} else if a.state.LastDir != "" {
			initial = a.state.LastDir + string(filepath.Separator)
		}
	}
	a.prompt.Open(kind, initial)
	a.state.ViewMode = models.PromptMode
}

func (a *App) handlePromptSubmit(msg components.PromptSubmitMsg) (tea.Model, tea.Cmd) {
	a.prompt.Visible = false
	a.state.ViewMode = models.NormalMode

	switch msg.Kind {
	case components.PromptOpen:
		if err := a.openFile(msg.Path); err != nil {
			return a, a.setStatus(fmt.Sprintf("Open failed: %v", err), true)
		}
		return a, nil

	case components.PromptSaveAs:
		doc := a.tabs.Active()
		if doc == nil {
			return a, nil
		}
		if err := doc.SaveAs(msg.Path); err != nil {
			log.Error("save as failed", "path", msg.Path, "error", err)
			return a, a.setStatus(fmt.Sprintf("Save failed: %v", err), true)
		}
		if a.fw != nil {
			if err := a.fw.Add(doc.Path); err != nil {
				log.Warn("cannot watch file", "path", doc.Path, "error", err)
			}
		}
		a.touchRecent(doc.Path)
		a.state.LastDir = filepath.Dir(doc.Path)

		cmd := a.setStatus("Saved "+doc.Title(), false)
		switch a.afterSaveAs {
		case confirmTagClose:
			a.afterSaveAs = ""
			a.closeActiveTab()
		case confirmTagQuit:
			a.afterSaveAs = ""
			return a, a.quit()
		}
		return a, cmd
	}
	return a, nil
}

func (a *App) handleConfirmResult(msg components.ConfirmResultMsg) (tea.Model, tea.Cmd) {
	a.confirm.Visible = false

	switch msg.Tag {
	case confirmTagClose:
		switch msg.Choice {
		case components.ConfirmYes:
			doc := a.tabs.Active()
			if doc != nil && doc.Path == "" {
				a.afterSaveAs = confirmTagClose
				a.openPrompt(components.PromptSaveAs)
				return a, nil
			}
			cmd := a.saveActive()
			a.closeActiveTab()
			return a, cmd
		case components.ConfirmNo:
			a.closeActiveTab()
		}

	case confirmTagQuit:
		switch msg.Choice {
		case components.ConfirmYes:
			doc := a.tabs.Active()
			if doc != nil && doc.Path == "" {
				a.afterSaveAs = confirmTagQuit
				a.openPrompt(components.PromptSaveAs)
				return a, nil
			}
			cmd := a.saveActive()
			return a, tea.Sequence(cmd, a.quit())
		case components.ConfirmNo:
			return a, a.quit()
		}

	case confirmTagReload:
		path := a.pendingReload
		a.pendingReload = ""
		if msg.Choice == components.ConfirmYes && path != "" {
			return a, a.reloadFromDisk(path)
		}
	}
	return a, nil
}

// handleFileChanged reacts to an external modification of an open file
func (a *App) handleFileChanged(path string) tea.Cmd {
	idx := a.tabs.FindByPath(path)
	if idx < 0 {
		return nil
	}
	doc := a.tabs.Documents()[idx]

	// Our own saves fire watcher events too; ignore when disk already
	// matches the buffer
	data, err := os.ReadFile(path)
	if err == nil && string(data) == doc.Text {
		return nil
	}

	a.pendingReload = path
	a.confirm.Open(confirmTagReload,
		"File changed on disk",
		fmt.Sprintf("%q was modified outside the editor. Reload it?", filepath.Base(path)),
		"Reload", "Keep mine")
	return nil
}

// reloadFromDisk replaces a document's content with the file on disk
func (a *App) reloadFromDisk(path string) tea.Cmd {
	idx := a.tabs.FindByPath(path)
	if idx < 0 {
		return nil
	}
	doc := a.tabs.Documents()[idx]

	data, err := os.ReadFile(path)
	if err != nil {
		return a.setStatus(fmt.Sprintf("Reload failed: %v", err), true)
	}
	doc.Text = string(data)
	doc.Dirty = false
	doc.Reparse()

	if idx == a.tabs.ActiveIndex() {
		a.syncActiveDocument(false)
	}
	return a.setStatus("Reloaded "+doc.Title(), false)
}

// cycleTheme switches to the next theme and restyles every component
func (a *App) cycleTheme() tea.Cmd {
	a.state.ThemeName = theme.NextTheme(a.state.ThemeName)
	th := theme.GetTheme(a.state.ThemeName)
	a.theme = th

	a.tabs.Theme = th
	a.treeView.Theme = th
	a.editor.SetTheme(th)
	a.searchBar.Theme = th
	a.prompt.Theme = th
	a.confirm.Theme = th
	a.errorOverlay.Theme = th
	a.updatePanelStyles()

	if a.store != nil {
		if err := a.store.SaveTheme(a.state.ThemeName); err != nil {
			log.Error("failed to save theme", "error", err)
		}
	}
	return a.setStatus("Theme: "+a.state.ThemeName, false)
}

// setStatus shows a transient message in the status bar
func (a *App) setStatus(msg string, isErr bool) tea.Cmd {
	a.statusMsg = msg
	a.statusErr = isErr
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// waitForFileEvent blocks on the watcher channel and forwards one event
func (a *App) waitForFileEvent() tea.Cmd {
	if a.fw == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-a.fw.Events()
		if !ok {
			return nil
		}
		return FileChangedMsg{Path: ev.Path}
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.confirm.Visible {
		a.confirm.Width = 56
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.confirm.View(),
		)
	}

	if a.showErr {
		a.errorOverlay.Width = 60
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	if a.prompt.Visible {
		a.prompt.Width = 64
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.prompt.View(),
		)
	}

	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height, lipgloss.NewStyle())
	}

	return a.renderNormalView()
}

// renderNormalView renders the tab bar, panels and status bars
func (a *App) renderNormalView() string {
	topBarLeft := "lazyjson"
	if doc := a.tabs.Active(); doc != nil && doc.Path != "" {
		topBarLeft = "lazyjson │ " + doc.Path
	}
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar(topBarLeft, "? help"))

	tabBar := a.tabs.RenderTabBar(a.state.Width)

	searchView := ""
	if a.state.ViewMode == models.SearchMode {
		a.searchBar.Width = a.state.Width - 2
		searchView = a.searchBar.View()
	}

	a.updatePanelDimensions()
	if searchView != "" {
		searchHeight := lipgloss.Height(searchView)
		a.leftPanel.Height -= searchHeight
		a.rightPanel.Height -= searchHeight
	}

	a.treeView.Width = a.leftPanel.Width
	a.treeView.Height = a.leftPanel.Height
	a.leftPanel.Content = a.treeView.View()

	a.editor.Width = a.rightPanel.Width
	a.editor.Height = a.rightPanel.Height
	a.rightPanel.Content = a.editor.View()

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.leftPanel.View(),
		a.rightPanel.View(),
	)

	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(a.statusLeft(), a.statusRight()))

	parts := []string{topBar, tabBar, panels}
	if searchView != "" {
		parts = append(parts, searchView)
	}
	parts = append(parts, bottomBar)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// statusLeft is the transient message or the default key hints
func (a *App) statusLeft() string {
	if a.statusMsg != "" {
		prefix := ""
		if a.statusErr {
			prefix = "✗ "
		}
		return prefix + a.statusMsg
	}
	if !a.editor.ReadOnly {
		return "[Esc] View mode | [Ctrl+S] Save"
	}
	return "[tab] Switch panel | [e] Edit | [p] Pretty | [m] Minify | [q] Quit"
}

// statusRight shows the cursor position and document validity
func (a *App) statusRight() string {
	doc := a.tabs.Active()
	if doc == nil {
		return "Ctrl+N new │ Ctrl+O open"
	}

	valid := "valid"
	if doc.ParseErr != nil {
		valid = fmt.Sprintf("invalid (line %d)", doc.ParseErr.Line)
	}

	line, col := a.editor.Position()
	return fmt.Sprintf("Ln %d, Col %d │ %s", line, col, valid)
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Top bar, tab bar and bottom bar take one line each
	contentHeight := a.state.Height - 3
	if contentHeight < 5 {
		contentHeight = 5
	}

	leftWidth := (a.state.Width * a.state.LeftPanelWidth) / 100
	if leftWidth < 20 {
		leftWidth = 20
	}

	rightWidth := a.state.Width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
		leftWidth = a.state.Width - rightWidth - 4
	}

	a.leftPanel.Width = leftWidth
	a.leftPanel.Height = contentHeight
	a.rightPanel.Width = rightWidth
	a.rightPanel.Height = contentHeight
}

// updatePanelStyles updates panel styling based on focus
func (a *App) updatePanelStyles() {
	if a.state.FocusedPanel == models.TreePanel {
		a.leftPanel.Style = lipgloss.NewStyle().BorderForeground(a.theme.BorderFocused)
		a.rightPanel.Style = lipgloss.NewStyle().BorderForeground(a.theme.Border)
	} else {
		a.leftPanel.Style = lipgloss.NewStyle().BorderForeground(a.theme.Border)
		a.rightPanel.Style = lipgloss.NewStyle().BorderForeground(a.theme.BorderFocused)
	}
}

// formatStatusBar formats a status bar with left and right aligned content.
// Widths are measured in display cells so multibyte text truncates cleanly.
func (a *App) formatStatusBar(left, right string) string {
	availableWidth := a.state.Width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	leftWidth := runewidth.StringWidth(left)
	rightWidth := runewidth.StringWidth(right)

	if leftWidth+rightWidth > availableWidth {
		if availableWidth > rightWidth {
			return runewidth.Truncate(left, availableWidth-rightWidth, "") + right
		}
		if availableWidth <= leftWidth {
			return runewidth.Truncate(left, availableWidth, "")
		}
		return left
	}

	spacing := availableWidth - leftWidth - rightWidth
	return left + strings.Repeat(" ", spacing) + right
}
