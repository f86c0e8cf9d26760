package jsondoc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the JSON value type of a node
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Node represents one value in a parsed JSON document.
// The tree mirrors document order: object children appear in key insertion
// order, array children in index order, and scalar nodes are leaves.
type Node struct {
	Kind     Kind
	Key      string  // object member key or decimal array index; "" for the root
	KeyRaw   string  // source literal of the member key, including quotes
	Value    any     // decoded payload for scalar kinds (string, float64, bool, nil)
	Raw      string  // exact source literal for scalar kinds
	Parent   *Node
	Children []*Node

	// Source range of the value's tokens in the original text, half-open.
	// For containers it spans the opening bracket through the closing one.
	Start int
	End   int

	// Source range of the member key token, zero for non-members.
	KeyStart int
	KeyEnd   int
}

// IsLeaf reports whether the node is a scalar
func (n *Node) IsLeaf() bool {
	return n.Kind != KindObject && n.Kind != KindArray
}

// AddChild appends a child node in document order
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Depth returns the node's depth in the tree (root = 0)
func (n *Node) Depth() int {
	depth := 0
	for current := n.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}

// Path returns a JSONPath-style locator for the node, e.g. $.users[0].name
func (n *Node) Path() string {
	if n.Parent == nil {
		return "$"
	}

	var parts []string
	for current := n; current.Parent != nil; current = current.Parent {
		if current.Parent.Kind == KindArray {
			parts = append([]string{"[" + current.Key + "]"}, parts...)
		} else {
			parts = append([]string{"." + current.Key}, parts...)
		}
	}
	return "$" + strings.Join(parts, "")
}

// Label returns the display label for the node in a tree panel
func (n *Node) Label() string {
	if n.Parent == nil {
		return "$"
	}
	if n.Parent.Kind == KindArray {
		return "[" + n.Key + "]"
	}
	return n.Key
}

// Preview returns a short display string for the node's value
func (n *Node) Preview() string {
	switch n.Kind {
	case KindObject:
		if len(n.Children) == 1 {
			return "{1 key}"
		}
		return fmt.Sprintf("{%d keys}", len(n.Children))
	case KindArray:
		if len(n.Children) == 1 {
			return "[1 item]"
		}
		return fmt.Sprintf("[%d items]", len(n.Children))
	default:
		return truncatePreview(n.Raw, 40)
	}
}

// NodeAtOffset returns the smallest node whose source range contains the
// given byte offset, preferring the deepest match. Returns nil when the
// offset falls outside the root's range.
func NodeAtOffset(root *Node, offset int) *Node {
	if root == nil || offset < root.Start || offset >= root.End {
		return nil
	}

	current := root
	for {
		descended := false
		for _, child := range current.Children {
			if offset >= child.Start && offset < child.End {
				current = child
				descended = true
				break
			}
		}
		if !descended {
			return current
		}
	}
}

// FindByPath locates a node by its Path() string, or nil if absent
func FindByPath(root *Node, path string) *Node {
	if root == nil {
		return nil
	}
	if path == "$" || path == "" {
		return root
	}
	var walk func(n *Node) *Node
	walk = func(n *Node) *Node {
		if n.Path() == path {
			return n
		}
		for _, child := range n.Children {
			if found := walk(child); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(root)
}

// truncatePreview shortens s to at most maxLen runes. Counting runes
// rather than bytes keeps multibyte text intact at the cut point.
func truncatePreview(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

func indexKey(i int) string {
	return strconv.Itoa(i)
}
