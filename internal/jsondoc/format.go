package jsondoc

import "strings"

// Mode selects the serialization style
type Mode int

const (
	ModePretty Mode = iota
	ModeMinify
)

// DefaultIndent is the pretty-print indent width used when none is configured
const DefaultIndent = 2

// Format parses the text and re-serializes it in the requested mode.
// Pretty mode indents with the given width (DefaultIndent when <= 0).
// Object keys keep their document order and scalars keep their exact
// source spelling, so formatting never changes the document's meaning.
func Format(text string, mode Mode, indent int) (string, error) {
	root, err := Parse(text)
	if err != nil {
		return "", err
	}
	return FormatTree(root, mode, indent), nil
}

// Pretty is shorthand for Format in pretty mode
func Pretty(text string, indent int) (string, error) {
	return Format(text, ModePretty, indent)
}

// Minify is shorthand for Format in minify mode
func Minify(text string) (string, error) {
	return Format(text, ModeMinify, 0)
}

// FormatTree serializes an already-parsed tree
func FormatTree(root *Node, mode Mode, indent int) string {
	if root == nil {
		return ""
	}
	if indent <= 0 {
		indent = DefaultIndent
	}

	var b strings.Builder
	if mode == ModeMinify {
		writeMinified(&b, root)
	} else {
		writePretty(&b, root, strings.Repeat(" ", indent), 0)
	}
	return b.String()
}

func writePretty(b *strings.Builder, n *Node, pad string, depth int) {
	switch n.Kind {
	case KindObject:
		if len(n.Children) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, child := range n.Children {
			writeIndent(b, pad, depth+1)
			b.WriteString(child.keyLiteral())
			b.WriteString(": ")
			writePretty(b, child, pad, depth+1)
			if i < len(n.Children)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, pad, depth)
		b.WriteByte('}')

	case KindArray:
		if len(n.Children) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, child := range n.Children {
			writeIndent(b, pad, depth+1)
			writePretty(b, child, pad, depth+1)
			if i < len(n.Children)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, pad, depth)
		b.WriteByte(']')

	default:
		b.WriteString(n.Raw)
	}
}

func writeMinified(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindObject:
		b.WriteByte('{')
		for i, child := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(child.keyLiteral())
			b.WriteByte(':')
			writeMinified(b, child)
		}
		b.WriteByte('}')

	case KindArray:
		b.WriteByte('[')
		for i, child := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeMinified(b, child)
		}
		b.WriteByte(']')

	default:
		b.WriteString(n.Raw)
	}
}

// keyLiteral returns the member key as a JSON string literal, preferring
// the original source spelling
func (n *Node) keyLiteral() string {
	if n.KeyRaw != "" {
		return n.KeyRaw
	}
	return encodeString(n.Key)
}

// encodeString renders a Go string as a JSON string literal
func encodeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				const hex = "0123456789abcdef"
				b.WriteString(`\u00`)
				b.WriteByte(hex[r>>4])
				b.WriteByte(hex[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeIndent(b *strings.Builder, pad string, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(pad)
	}
}
