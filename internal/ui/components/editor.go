package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/calebyang/lazyjson/internal/ui/theme"
)

// ContentChangedMsg is sent after every edit so the document can be
// reparsed and the tree refreshed while typing.
type ContentChangedMsg struct{}

// EditDoneMsg is sent when the user leaves edit mode
type EditDoneMsg struct{}

// Editor is the text panel for viewing and editing a JSON document. View
// mode scrolls with syntax highlighting; edit mode moves a cursor and
// mutates the buffer directly.
type Editor struct {
	// Content
	lines     []string
	cursorRow int
	cursorCol int
	scrollY   int

	// State
	Width       int
	Height      int
	ReadOnly    bool
	Focused     bool
	IndentWidth int

	// Theme
	Theme theme.Theme

	// Highlight ranges as byte offsets into the joined text. selStart is
	// -1 when there is no tree selection, currentMatch is -1 when no match
	// is current.
	selStart     int
	selEnd       int
	matches      [][2]int
	currentMatch int

	// Cached styles
	cachedStyles *editorStyles

	// Chroma formatter (cached for performance)
	chromaStyle     *chroma.Style
	chromaFormatter chroma.Formatter
	chromaLexer     chroma.Lexer
}

// editorStyles holds pre-computed styles
type editorStyles struct {
	lineNumber    lipgloss.Style
	lineNumberSep lipgloss.Style
	content       lipgloss.Style
	cursor        lipgloss.Style
	emptyLine     lipgloss.Style
	selection     lipgloss.Style
	match         lipgloss.Style
	currentMatch  lipgloss.Style
}

// NewEditor creates a new editor
func NewEditor(th theme.Theme) *Editor {
	ed := &Editor{
		lines:        []string{""},
		ReadOnly:     true,
		IndentWidth:  2,
		Theme:        th,
		selStart:     -1,
		selEnd:       -1,
		currentMatch: -1,
	}
	ed.initStyles()
	ed.initChroma()
	return ed
}

// initStyles initializes cached styles
func (ed *Editor) initStyles() {
	ed.cachedStyles = &editorStyles{
		lineNumber: lipgloss.NewStyle().
			Foreground(ed.Theme.Comment),
		lineNumberSep: lipgloss.NewStyle().
			Foreground(ed.Theme.Border),
		content: lipgloss.NewStyle().
			Foreground(ed.Theme.Foreground),
		cursor: lipgloss.NewStyle().
			Foreground(ed.Theme.Background).
			Background(ed.Theme.Cursor),
		emptyLine: lipgloss.NewStyle().
			Foreground(ed.Theme.Comment),
		selection: lipgloss.NewStyle().
			Foreground(ed.Theme.Foreground).
			Background(ed.Theme.Selection),
		match: lipgloss.NewStyle().
			Background(ed.Theme.Match),
		currentMatch: lipgloss.NewStyle().
			Foreground(ed.Theme.Background).
			Background(ed.Theme.CurrentMatch),
	}
}

// initChroma initializes the syntax highlighter
func (ed *Editor) initChroma() {
	ed.chromaStyle = styles.Get("monokai")
	if ed.chromaStyle == nil {
		ed.chromaStyle = styles.Fallback
	}

	ed.chromaFormatter = formatters.Get("terminal256")
	if ed.chromaFormatter == nil {
		ed.chromaFormatter = formatters.Fallback
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	ed.chromaLexer = chroma.Coalesce(lexer)
}

// SetTheme swaps the color scheme at runtime
func (ed *Editor) SetTheme(th theme.Theme) {
	ed.Theme = th
	ed.initStyles()
}

// SetText replaces the buffer. The cursor resets to the top when
// resetCursor is set, otherwise it is clamped to the new content.
func (ed *Editor) SetText(text string, resetCursor bool) {
	ed.lines = strings.Split(text, "\n")
	if resetCursor {
		ed.cursorRow = 0
		ed.cursorCol = 0
		ed.scrollY = 0
	} else {
		ed.clampCursor()
	}
	ed.ClearSelection()
	ed.ClearMatches()
}

// Text returns the buffer as a single string
func (ed *Editor) Text() string {
	return strings.Join(ed.lines, "\n")
}

// EnterEditMode switches to edit mode
func (ed *Editor) EnterEditMode() {
	ed.ReadOnly = false
}

// ExitEditMode switches back to view mode. Edits stay in the buffer; the
// document model already received them through ContentChangedMsg.
func (ed *Editor) ExitEditMode() {
	ed.ReadOnly = true
}

// CopyAll copies the whole buffer to the clipboard
func (ed *Editor) CopyAll() error {
	return clipboard.WriteAll(ed.Text())
}

// SetSelection highlights the half-open byte range [start, end) and moves
// the cursor to its start
func (ed *Editor) SetSelection(start, end int) {
	ed.selStart = start
	ed.selEnd = end
	ed.SetCursorOffset(start)
}

// ClearSelection removes the selection highlight
func (ed *Editor) ClearSelection() {
	ed.selStart = -1
	ed.selEnd = -1
}

// SetMatches sets the search match ranges. current indexes the match to
// render with the stronger highlight, -1 for none.
func (ed *Editor) SetMatches(matches [][2]int, current int) {
	ed.matches = matches
	ed.currentMatch = current
	if current >= 0 && current < len(matches) {
		ed.SetCursorOffset(matches[current][0])
	}
}

// ClearMatches removes all search highlights
func (ed *Editor) ClearMatches() {
	ed.matches = nil
	ed.currentMatch = -1
}

// CursorOffset returns the cursor position as a byte offset
func (ed *Editor) CursorOffset() int {
	offset := 0
	for i := 0; i < ed.cursorRow && i < len(ed.lines); i++ {
		offset += len(ed.lines[i]) + 1
	}
	runes := []rune(ed.lines[ed.cursorRow])
	col := ed.cursorCol
	if col > len(runes) {
		col = len(runes)
	}
	return offset + len(string(runes[:col]))
}

// SetCursorOffset moves the cursor to a byte offset, scrolling it into
// view on the next render
func (ed *Editor) SetCursorOffset(offset int) {
	row, col := ed.offsetToPosition(offset)
	ed.cursorRow = row
	ed.cursorCol = col
}

// GoToLineColumn moves the cursor to a 1-based line and column, as
// reported by parse errors
func (ed *Editor) GoToLineColumn(line, col int) {
	ed.cursorRow = line - 1
	ed.cursorCol = col - 1
	ed.clampCursor()
}

// Position returns the 1-based cursor line and column
func (ed *Editor) Position() (int, int) {
	return ed.cursorRow + 1, ed.cursorCol + 1
}

// offsetToPosition converts a byte offset to a row and rune column
func (ed *Editor) offsetToPosition(offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	pos := 0
	for row, line := range ed.lines {
		end := pos + len(line)
		if offset <= end {
			return row, len([]rune(line[:offset-pos]))
		}
		pos = end + 1
	}
	last := len(ed.lines) - 1
	return last, len([]rune(ed.lines[last]))
}

func (ed *Editor) clampCursor() {
	if ed.cursorRow >= len(ed.lines) {
		ed.cursorRow = len(ed.lines) - 1
	}
	if ed.cursorRow < 0 {
		ed.cursorRow = 0
	}
	lineLen := len([]rune(ed.lines[ed.cursorRow]))
	if ed.cursorCol > lineLen {
		ed.cursorCol = lineLen
	}
	if ed.cursorCol < 0 {
		ed.cursorCol = 0
	}
}

// Update handles keyboard input
func (ed *Editor) Update(msg tea.KeyMsg) (*Editor, tea.Cmd) {
	if ed.ReadOnly {
		return ed.handleViewKeys(msg)
	}
	return ed.handleEditKeys(msg)
}

// handleViewKeys handles key events in view mode
func (ed *Editor) handleViewKeys(msg tea.KeyMsg) (*Editor, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		ed.moveCursorDown()
	case "k", "up":
		ed.moveCursorUp()
	case "h", "left":
		ed.moveCursorLeft()
	case "l", "right":
		ed.moveCursorRight()
	case "g", "ctrl+home":
		ed.moveCursorToDocStart()
	case "G", "ctrl+end":
		ed.moveCursorToDocEnd()
	case "ctrl+d", "pgdown":
		ed.movePageDown()
	case "ctrl+u", "pgup":
		ed.movePageUp()

	case "y":
		_ = ed.CopyAll()

	case "e", "i":
		ed.EnterEditMode()
	}

	return ed, nil
}

// handleEditKeys handles key events in edit mode
func (ed *Editor) handleEditKeys(msg tea.KeyMsg) (*Editor, tea.Cmd) {
	changed := false

	switch msg.String() {
	// Cursor movement
	case "left":
		ed.moveCursorLeft()
	case "right":
		ed.moveCursorRight()
	case "up":
		ed.moveCursorUp()
	case "down":
		ed.moveCursorDown()
	case "home":
		ed.cursorCol = 0
	case "end":
		ed.cursorCol = len([]rune(ed.lines[ed.cursorRow]))
	case "ctrl+home":
		ed.moveCursorToDocStart()
	case "ctrl+end":
		ed.moveCursorToDocEnd()
	case "pgdown":
		ed.movePageDown()
	case "pgup":
		ed.movePageUp()

	// Text editing
	case "backspace":
		changed = ed.deleteCharBefore()
	case "delete":
		changed = ed.deleteCharAfter()
	case "enter":
		ed.insertNewline()
		changed = true
	case "tab":
		for i := 0; i < ed.IndentWidth; i++ {
			ed.insertChar(' ')
		}
		changed = true

	// Leave edit mode
	case "esc":
		ed.ExitEditMode()
		return ed, func() tea.Msg {
			return EditDoneMsg{}
		}

	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				ed.insertChar(r)
			}
			changed = len(msg.Runes) > 0
		} else if s := msg.String(); len(s) == 1 && s[0] >= 32 && s[0] <= 126 {
			ed.insertChar(rune(s[0]))
			changed = true
		}
	}

	if changed {
		ed.ClearSelection()
		ed.ClearMatches()
		return ed, func() tea.Msg {
			return ContentChangedMsg{}
		}
	}
	return ed, nil
}

// Cursor movement methods
func (ed *Editor) moveCursorLeft() {
	if ed.cursorCol > 0 {
		ed.cursorCol--
	} else if ed.cursorRow > 0 {
		ed.cursorRow--
		ed.cursorCol = len([]rune(ed.lines[ed.cursorRow]))
	}
}

func (ed *Editor) moveCursorRight() {
	lineLen := len([]rune(ed.lines[ed.cursorRow]))
	if ed.cursorCol < lineLen {
		ed.cursorCol++
	} else if ed.cursorRow < len(ed.lines)-1 {
		ed.cursorRow++
		ed.cursorCol = 0
	}
}

func (ed *Editor) moveCursorUp() {
	if ed.cursorRow > 0 {
		ed.cursorRow--
		ed.clampCursor()
	}
}

func (ed *Editor) moveCursorDown() {
	if ed.cursorRow < len(ed.lines)-1 {
		ed.cursorRow++
		ed.clampCursor()
	}
}

func (ed *Editor) moveCursorToDocStart() {
	ed.cursorRow = 0
	ed.cursorCol = 0
}

func (ed *Editor) moveCursorToDocEnd() {
	ed.cursorRow = len(ed.lines) - 1
	ed.cursorCol = len([]rune(ed.lines[ed.cursorRow]))
}

func (ed *Editor) movePageDown() {
	pageSize := ed.Height - 2
	if pageSize < 1 {
		pageSize = 1
	}
	ed.cursorRow += pageSize
	ed.clampCursor()
}

func (ed *Editor) movePageUp() {
	pageSize := ed.Height - 2
	if pageSize < 1 {
		pageSize = 1
	}
	ed.cursorRow -= pageSize
	ed.clampCursor()
}

// Text editing methods
func (ed *Editor) insertChar(ch rune) {
	runes := []rune(ed.lines[ed.cursorRow])

	newRunes := make([]rune, 0, len(runes)+1)
	newRunes = append(newRunes, runes[:ed.cursorCol]...)
	newRunes = append(newRunes, ch)
	newRunes = append(newRunes, runes[ed.cursorCol:]...)

	ed.lines[ed.cursorRow] = string(newRunes)
	ed.cursorCol++
}

func (ed *Editor) insertNewline() {
	runes := []rune(ed.lines[ed.cursorRow])

	before := string(runes[:ed.cursorCol])
	after := string(runes[ed.cursorCol:])

	ed.lines[ed.cursorRow] = before

	newLines := make([]string, len(ed.lines)+1)
	copy(newLines[:ed.cursorRow+1], ed.lines[:ed.cursorRow+1])
	newLines[ed.cursorRow+1] = after
	copy(newLines[ed.cursorRow+2:], ed.lines[ed.cursorRow+1:])
	ed.lines = newLines

	ed.cursorRow++
	ed.cursorCol = 0
}

func (ed *Editor) deleteCharBefore() bool {
	if ed.cursorCol > 0 {
		runes := []rune(ed.lines[ed.cursorRow])
		newRunes := append(runes[:ed.cursorCol-1], runes[ed.cursorCol:]...)
		ed.lines[ed.cursorRow] = string(newRunes)
		ed.cursorCol--
		return true
	}
	if ed.cursorRow > 0 {
		prevLine := ed.lines[ed.cursorRow-1]
		currLine := ed.lines[ed.cursorRow]
		ed.cursorCol = len([]rune(prevLine))
		ed.lines[ed.cursorRow-1] = prevLine + currLine

		ed.lines = append(ed.lines[:ed.cursorRow], ed.lines[ed.cursorRow+1:]...)
		ed.cursorRow--
		return true
	}
	return false
}

func (ed *Editor) deleteCharAfter() bool {
	runes := []rune(ed.lines[ed.cursorRow])

	if ed.cursorCol < len(runes) {
		newRunes := append(runes[:ed.cursorCol], runes[ed.cursorCol+1:]...)
		ed.lines[ed.cursorRow] = string(newRunes)
		return true
	}
	if ed.cursorRow < len(ed.lines)-1 {
		nextLine := ed.lines[ed.cursorRow+1]
		ed.lines[ed.cursorRow] = ed.lines[ed.cursorRow] + nextLine

		ed.lines = append(ed.lines[:ed.cursorRow+1], ed.lines[ed.cursorRow+2:]...)
		return true
	}
	return false
}

// View renders the editor content
func (ed *Editor) View() string {
	if ed.Width <= 0 || ed.Height <= 0 {
		return ""
	}

	contentHeight := ed.Height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	ed.ensureCursorVisible(contentHeight)

	startLine := ed.scrollY
	endLine := startLine + contentHeight
	if endLine > len(ed.lines) {
		endLine = len(ed.lines)
	}

	var contentLines []string
	for i := startLine; i < endLine; i++ {
		hasCursor := (i == ed.cursorRow) && !ed.ReadOnly
		contentLines = append(contentLines, ed.renderLine(i, hasCursor))
	}
	for len(contentLines) < contentHeight {
		contentLines = append(contentLines, ed.renderEmptyLine())
	}

	return strings.Join(contentLines, "\n")
}

// getLineNumberWidth returns the width needed for line numbers
func (ed *Editor) getLineNumberWidth() int {
	maxLine := len(ed.lines)
	if maxLine < 10 {
		maxLine = 10
	}
	digits := len(fmt.Sprintf("%d", maxLine))
	if digits < 2 {
		digits = 2
	}
	return digits + 3
}

// lineStartOffset returns the byte offset where a line begins
func (ed *Editor) lineStartOffset(lineNum int) int {
	offset := 0
	for i := 0; i < lineNum && i < len(ed.lines); i++ {
		offset += len(ed.lines[i]) + 1
	}
	return offset
}

// renderLine renders a single line with line number
func (ed *Editor) renderLine(lineNum int, hasCursor bool) string {
	lineNumWidth := ed.getLineNumberWidth()
	lineNumStr := fmt.Sprintf("%*d", lineNumWidth-3, lineNum+1)

	lineNumPart := ed.cachedStyles.lineNumber.Render(lineNumStr) +
		ed.cachedStyles.lineNumberSep.Render(" │ ")

	line := ""
	if lineNum < len(ed.lines) {
		line = ed.lines[lineNum]
	}

	availableWidth := ed.Width - lineNumWidth - 2
	if availableWidth < 10 {
		availableWidth = 10
	}

	displayLine := line
	if !hasCursor && runewidth.StringWidth(displayLine) > availableWidth {
		displayLine = runewidth.Truncate(displayLine, availableWidth-1, "…")
	}

	var contentPart string
	switch {
	case hasCursor:
		// Cursor rendering skips highlighting; combining the two is not
		// worth the complexity
		contentPart = ed.renderLineWithCursor(displayLine)
	case ed.lineHasHighlight(lineNum, line):
		contentPart = ed.renderLineWithHighlights(lineNum, displayLine)
	default:
		contentPart = ed.highlightLine(displayLine)
	}

	return lineNumPart + contentPart
}

// lineHasHighlight reports whether a selection or match range touches the
// line
func (ed *Editor) lineHasHighlight(lineNum int, line string) bool {
	start := ed.lineStartOffset(lineNum)
	end := start + len(line)

	if ed.selStart >= 0 && ed.selStart < end && ed.selEnd > start {
		return true
	}
	for _, m := range ed.matches {
		if m[0] < end && m[1] > start {
			return true
		}
	}
	return false
}

// renderLineWithHighlights renders a line as plain text with background
// styles over the selection and match ranges
func (ed *Editor) renderLineWithHighlights(lineNum int, line string) string {
	lineStart := ed.lineStartOffset(lineNum)

	styleAt := func(offset int) lipgloss.Style {
		for i, m := range ed.matches {
			if offset >= m[0] && offset < m[1] {
				if i == ed.currentMatch {
					return ed.cachedStyles.currentMatch
				}
				return ed.cachedStyles.match
			}
		}
		if ed.selStart >= 0 && offset >= ed.selStart && offset < ed.selEnd {
			return ed.cachedStyles.selection
		}
		return ed.cachedStyles.content
	}

	var result strings.Builder
	byteOff := 0
	for _, r := range line {
		result.WriteString(styleAt(lineStart + byteOff).Render(string(r)))
		byteOff += len(string(r))
	}
	return result.String()
}

// renderLineWithCursor renders a line with the cursor block for edit mode
func (ed *Editor) renderLineWithCursor(line string) string {
	runes := []rune(line)

	var result strings.Builder
	for i, r := range runes {
		if i == ed.cursorCol {
			result.WriteString(ed.cachedStyles.cursor.Render(string(r)))
		} else {
			result.WriteString(ed.cachedStyles.content.Render(string(r)))
		}
	}

	if ed.cursorCol >= len(runes) {
		result.WriteString(ed.cachedStyles.cursor.Render(" "))
	}

	return result.String()
}

// renderEmptyLine renders an empty line placeholder
func (ed *Editor) renderEmptyLine() string {
	lineNumWidth := ed.getLineNumberWidth()
	lineNumStr := fmt.Sprintf("%*s", lineNumWidth-3, "~")

	return ed.cachedStyles.emptyLine.Render(lineNumStr) +
		ed.cachedStyles.lineNumberSep.Render(" │ ")
}

// highlightLine applies syntax highlighting to a single line
func (ed *Editor) highlightLine(line string) string {
	if line == "" {
		return ""
	}

	iterator, err := ed.chromaLexer.Tokenise(nil, line)
	if err != nil {
		return ed.cachedStyles.content.Render(line)
	}

	var buf bytes.Buffer
	if err := ed.chromaFormatter.Format(&buf, ed.chromaStyle, iterator); err != nil {
		return ed.cachedStyles.content.Render(line)
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// ensureCursorVisible adjusts scroll to keep the cursor in view
func (ed *Editor) ensureCursorVisible(viewportHeight int) {
	if ed.cursorRow < ed.scrollY {
		ed.scrollY = ed.cursorRow
	}
	if ed.cursorRow >= ed.scrollY+viewportHeight {
		ed.scrollY = ed.cursorRow - viewportHeight + 1
	}

	maxScroll := len(ed.lines) - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if ed.scrollY > maxScroll {
		ed.scrollY = maxScroll
	}
	if ed.scrollY < 0 {
		ed.scrollY = 0
	}
}
