package components

// TreeView renders a parsed JSON document as a navigable tree with
// keyboard expand/collapse, viewport scrolling and cursor highlighting.
// Expansion state is keyed by node path so it survives the wholesale tree
// rebuild that follows every edit. When the document does not parse, the
// view shows the parse error instead of a tree.

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/calebyang/lazyjson/internal/jsondoc"
	"github.com/calebyang/lazyjson/internal/ui/theme"
)

// NodeSelectedMsg is sent when a node is selected (Enter key). The editor
// uses the node's source range to move its cursor and selection.
type NodeSelectedMsg struct {
	Node *jsondoc.Node
}

// CopyDoneMsg reports a clipboard copy triggered from the tree
type CopyDoneMsg struct {
	Label string
	Err   error
}

// TreeView is the tree panel component
type TreeView struct {
	Root         *jsondoc.Node
	Err          *jsondoc.ParseError
	CursorIndex  int
	Width        int
	Height       int
	Theme        theme.Theme
	ScrollOffset int

	// Expansion state by node path, kept across tree rebuilds
	expanded map[string]bool
}

// NewTreeView creates a new tree view component
func NewTreeView(th theme.Theme) *TreeView {
	return &TreeView{
		Theme:    th,
		Width:    40,
		Height:   20,
		expanded: make(map[string]bool),
	}
}

// SetTree replaces the displayed tree. err is the parse error when root is
// nil. Expansion entries for paths absent from the new tree are dropped so
// the map does not grow with every edit.
func (tv *TreeView) SetTree(root *jsondoc.Node, err *jsondoc.ParseError) {
	tv.Root = root
	tv.Err = err
	tv.pruneExpansion()

	visible := tv.visibleNodes()
	if tv.CursorIndex >= len(visible) {
		tv.CursorIndex = len(visible) - 1
	}
	if tv.CursorIndex < 0 {
		tv.CursorIndex = 0
	}
}

// ResetExpansion forgets all expansion state, collapsing everything back to
// the default. Called when the view starts showing a different document.
func (tv *TreeView) ResetExpansion() {
	tv.expanded = make(map[string]bool)
}

func (tv *TreeView) pruneExpansion() {
	if tv.Root == nil || len(tv.expanded) == 0 {
		return
	}

	live := make(map[string]bool, len(tv.expanded))
	var walk func(n *jsondoc.Node)
	walk = func(n *jsondoc.Node) {
		if n.IsLeaf() {
			return
		}
		live[n.Path()] = true
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(tv.Root)

	for path := range tv.expanded {
		if !live[path] {
			delete(tv.expanded, path)
		}
	}
}

// isExpanded reports whether a container node shows its children. The root
// starts expanded, everything else collapsed.
func (tv *TreeView) isExpanded(n *jsondoc.Node) bool {
	if n.IsLeaf() {
		return false
	}
	if state, ok := tv.expanded[n.Path()]; ok {
		return state
	}
	return n.Parent == nil
}

func (tv *TreeView) toggle(n *jsondoc.Node) {
	if n.IsLeaf() {
		return
	}
	tv.expanded[n.Path()] = !tv.isExpanded(n)
}

// visibleNodes flattens the tree into the rows currently on display
func (tv *TreeView) visibleNodes() []*jsondoc.Node {
	if tv.Root == nil {
		return nil
	}

	var result []*jsondoc.Node
	var walk func(n *jsondoc.Node)
	walk = func(n *jsondoc.Node) {
		result = append(result, n)
		if tv.isExpanded(n) {
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	walk(tv.Root)
	return result
}

// CurrentNode returns the node under the cursor
func (tv *TreeView) CurrentNode() *jsondoc.Node {
	visible := tv.visibleNodes()
	if tv.CursorIndex < 0 || tv.CursorIndex >= len(visible) {
		return nil
	}
	return visible[tv.CursorIndex]
}

// SelectOffset moves the cursor to the deepest node covering the given
// text offset, expanding its ancestors so it is visible. Returns the
// selected node, or nil when the offset is outside the document.
func (tv *TreeView) SelectOffset(offset int) *jsondoc.Node {
	node := jsondoc.NodeAtOffset(tv.Root, offset)
	if node == nil {
		return nil
	}

	for anc := node.Parent; anc != nil; anc = anc.Parent {
		tv.expanded[anc.Path()] = true
	}

	visible := tv.visibleNodes()
	for i, n := range visible {
		if n == node {
			tv.CursorIndex = i
			break
		}
	}
	return node
}

// Update handles keyboard input for tree navigation
func (tv *TreeView) Update(msg tea.KeyMsg) (*TreeView, tea.Cmd) {
	visible := tv.visibleNodes()
	if len(visible) == 0 {
		return tv, nil
	}

	var cmd tea.Cmd

	switch msg.String() {
	case "up", "k":
		if tv.CursorIndex > 0 {
			tv.CursorIndex--
		}

	case "down", "j":
		if tv.CursorIndex < len(visible)-1 {
			tv.CursorIndex++
		}

	case "g":
		tv.CursorIndex = 0
		tv.ScrollOffset = 0

	case "G":
		tv.CursorIndex = len(visible) - 1

	case "right", "l", " ":
		if node := visible[tv.CursorIndex]; node != nil {
			tv.toggle(node)
		}

	case "left", "h":
		node := visible[tv.CursorIndex]
		if node == nil {
			break
		}
		if tv.isExpanded(node) {
			tv.toggle(node)
		} else if node.Parent != nil {
			for i, n := range visible {
				if n == node.Parent {
					tv.CursorIndex = i
					break
				}
			}
		}

	case "enter":
		if node := visible[tv.CursorIndex]; node != nil {
			cmd = func() tea.Msg {
				return NodeSelectedMsg{Node: node}
			}
		}

	case "c":
		cmd = tv.copyValue(visible[tv.CursorIndex])

	case "C":
		cmd = tv.copyKey(visible[tv.CursorIndex])

	case "y":
		cmd = tv.copyPath(visible[tv.CursorIndex])
	}

	return tv, cmd
}

func (tv *TreeView) copyValue(node *jsondoc.Node) tea.Cmd {
	if node == nil {
		return nil
	}
	text := jsondoc.FormatTree(node, jsondoc.ModeMinify, 0)
	return func() tea.Msg {
		return CopyDoneMsg{Label: "value", Err: clipboard.WriteAll(text)}
	}
}

func (tv *TreeView) copyKey(node *jsondoc.Node) tea.Cmd {
	if node == nil {
		return nil
	}
	return func() tea.Msg {
		return CopyDoneMsg{Label: "key", Err: clipboard.WriteAll(node.Label())}
	}
}

func (tv *TreeView) copyPath(node *jsondoc.Node) tea.Cmd {
	if node == nil {
		return nil
	}
	return func() tea.Msg {
		return CopyDoneMsg{Label: "path", Err: clipboard.WriteAll(node.Path())}
	}
}

// View renders the tree as a string
func (tv *TreeView) View() string {
	if tv.Root == nil {
		return tv.errorState()
	}

	visible := tv.visibleNodes()
	if len(visible) == 0 {
		return tv.emptyState()
	}

	if tv.CursorIndex < 0 {
		tv.CursorIndex = 0
	}
	if tv.CursorIndex >= len(visible) {
		tv.CursorIndex = len(visible) - 1
	}

	viewHeight := tv.Height - 2
	if viewHeight < 1 {
		viewHeight = 1
	}

	tv.adjustScrollOffset(len(visible), viewHeight)

	startIdx := tv.ScrollOffset
	endIdx := tv.ScrollOffset + viewHeight
	if endIdx > len(visible) {
		endIdx = len(visible)
	}

	var lines []string
	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, tv.renderNode(visible[i], i == tv.CursorIndex))
	}
	for len(lines) < viewHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// renderNode renders a single tree row
func (tv *TreeView) renderNode(node *jsondoc.Node, selected bool) string {
	indent := strings.Repeat("  ", node.Depth())
	icon := tv.nodeIcon(node)

	label := node.Label()
	preview := node.Preview()

	maxWidth := tv.Width - 2
	if maxWidth < 10 {
		maxWidth = 10
	}

	if selected {
		content := indent + icon + " " + label + ": " + preview
		if runewidth.StringWidth(content) > maxWidth {
			content = runewidth.Truncate(content, maxWidth, "…")
		}
		return lipgloss.NewStyle().
			Background(tv.Theme.Selection).
			Foreground(tv.Theme.Foreground).
			Bold(true).
			Width(maxWidth).
			Render(content)
	}

	keyStyle := lipgloss.NewStyle().Foreground(tv.Theme.JSONKey)
	previewStyle := lipgloss.NewStyle().Foreground(tv.valueColor(node))

	plain := indent + icon + " " + label + ": " + preview
	if runewidth.StringWidth(plain) > maxWidth {
		overflow := runewidth.StringWidth(plain) - maxWidth
		if w := runewidth.StringWidth(preview); w > overflow {
			preview = runewidth.Truncate(preview, w-overflow, "…")
		} else {
			preview = ""
		}
	}

	return indent + icon + " " + keyStyle.Render(label) + ": " + previewStyle.Render(preview)
}

func (tv *TreeView) nodeIcon(node *jsondoc.Node) string {
	if node.IsLeaf() {
		return "•"
	}
	if tv.isExpanded(node) {
		return "▾"
	}
	return "▸"
}

func (tv *TreeView) valueColor(node *jsondoc.Node) lipgloss.Color {
	switch node.Kind {
	case jsondoc.KindString:
		return tv.Theme.JSONString
	case jsondoc.KindNumber:
		return tv.Theme.JSONNumber
	case jsondoc.KindBool:
		return tv.Theme.JSONBoolean
	case jsondoc.KindNull:
		return tv.Theme.JSONNull
	default:
		return tv.Theme.Comment
	}
}

// adjustScrollOffset adjusts the scroll offset to keep the cursor visible
func (tv *TreeView) adjustScrollOffset(totalNodes, viewHeight int) {
	if tv.CursorIndex < tv.ScrollOffset {
		tv.ScrollOffset = tv.CursorIndex
	}
	if tv.CursorIndex >= tv.ScrollOffset+viewHeight {
		tv.ScrollOffset = tv.CursorIndex - viewHeight + 1
	}

	if tv.ScrollOffset < 0 {
		tv.ScrollOffset = 0
	}
	maxScroll := totalNodes - viewHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if tv.ScrollOffset > maxScroll {
		tv.ScrollOffset = maxScroll
	}
}

// errorState renders the parse failure panel shown instead of a tree
func (tv *TreeView) errorState() string {
	headStyle := lipgloss.NewStyle().
		Foreground(tv.Theme.Error).
		Bold(true)
	msgStyle := lipgloss.NewStyle().
		Foreground(tv.Theme.Comment).
		Width(tv.Width - 2)

	if tv.Err == nil {
		return msgStyle.Italic(true).Render("No document")
	}

	return headStyle.Render("Invalid JSON") + "\n\n" +
		msgStyle.Render(tv.Err.Error())
}

// emptyState returns the empty state view
func (tv *TreeView) emptyState() string {
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Comment).
		Italic(true).
		Width(tv.Width - 2).
		Align(lipgloss.Center).
		Render("Empty document")
}
