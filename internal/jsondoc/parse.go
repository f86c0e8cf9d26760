package jsondoc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ParseError describes a malformed JSON document. Offset is a byte offset
// into the source text; Line and Column are 1-based and derived from it.
type ParseError struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse builds the node tree for a JSON document, recording the source
// range of every value. The whole input must be a single JSON value
// followed only by whitespace.
func Parse(text string) (*Node, error) {
	p := &parser{src: text}

	p.skipSpace()
	root, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorAt(p.pos, fmt.Sprintf("unexpected %s after top-level value", describeByte(p.src[p.pos])))
	}

	return root, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) parseValue() (*Node, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorAt(p.pos, "unexpected end of input")
	}

	switch c := p.src[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == 't' || c == 'f':
		return p.parseBool()
	case c == 'n':
		return p.parseNull()
	default:
		return nil, p.errorAt(p.pos, fmt.Sprintf("unexpected %s", describeByte(c)))
	}
}

func (p *parser) parseObject() (*Node, error) {
	node := &Node{Kind: KindObject, Start: p.pos}
	p.pos++ // consume '{'
	p.skipSpace()

	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		node.End = p.pos
		return node, nil
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorAt(p.pos, "unexpected end of input in object")
		}
		if p.src[p.pos] != '"' {
			return nil, p.errorAt(p.pos, fmt.Sprintf("expected object key, found %s", describeByte(p.src[p.pos])))
		}

		keyStart := p.pos
		key, err := p.scanString()
		if err != nil {
			return nil, err
		}
		keyEnd := p.pos

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.expectedAt("':' after object key")
		}
		p.pos++
		p.skipSpace()

		child, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		child.Key = key
		child.KeyRaw = p.src[keyStart:keyEnd]
		child.KeyStart = keyStart
		child.KeyEnd = keyEnd
		node.AddChild(child)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorAt(p.pos, "unexpected end of input in object")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			node.End = p.pos
			return node, nil
		default:
			return nil, p.errorAt(p.pos, fmt.Sprintf("expected ',' or '}' in object, found %s", describeByte(p.src[p.pos])))
		}
	}
}

func (p *parser) parseArray() (*Node, error) {
	node := &Node{Kind: KindArray, Start: p.pos}
	p.pos++ // consume '['
	p.skipSpace()

	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		node.End = p.pos
		return node, nil
	}

	for {
		p.skipSpace()

		child, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		child.Key = indexKey(len(node.Children))
		node.AddChild(child)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorAt(p.pos, "unexpected end of input in array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			node.End = p.pos
			return node, nil
		default:
			return nil, p.errorAt(p.pos, fmt.Sprintf("expected ',' or ']' in array, found %s", describeByte(p.src[p.pos])))
		}
	}
}

func (p *parser) parseString() (*Node, error) {
	start := p.pos
	value, err := p.scanString()
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:  KindString,
		Value: value,
		Raw:   p.src[start:p.pos],
		Start: start,
		End:   p.pos,
	}, nil
}

// scanString consumes a string literal starting at the opening quote and
// returns the decoded value
func (p *parser) scanString() (string, error) {
	p.pos++ // consume opening '"'
	var b strings.Builder

	for {
		if p.pos >= len(p.src) {
			return "", p.errorAt(p.pos, "unterminated string")
		}

		c := p.src[p.pos]
		switch {
		case c == '"':
			p.pos++
			return b.String(), nil

		case c == '\\':
			r, err := p.scanEscape()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)

		case c < 0x20:
			return "", p.errorAt(p.pos, "invalid control character in string")

		case c < utf8.RuneSelf:
			b.WriteByte(c)
			p.pos++

		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

// scanEscape consumes a backslash escape sequence and returns its rune
func (p *parser) scanEscape() (rune, error) {
	escStart := p.pos
	p.pos++ // consume '\\'
	if p.pos >= len(p.src) {
		return 0, p.errorAt(p.pos, "unterminated string")
	}

	c := p.src[p.pos]
	p.pos++
	switch c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		r, err := p.scanHexRune()
		if err != nil {
			return 0, err
		}
		if utf16.IsSurrogate(r) {
			// A high surrogate must be followed by \uXXXX with the low half
			if p.pos+1 < len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
				p.pos += 2
				r2, err := p.scanHexRune()
				if err != nil {
					return 0, err
				}
				if combined := utf16.DecodeRune(r, r2); combined != utf8.RuneError {
					return combined, nil
				}
			}
			return utf8.RuneError, nil
		}
		return r, nil
	default:
		return 0, p.errorAt(escStart, fmt.Sprintf("invalid escape sequence '\\%c'", c))
	}
}

func (p *parser) scanHexRune() (rune, error) {
	if p.pos+4 > len(p.src) {
		return 0, p.errorAt(p.pos, "invalid unicode escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
	if err != nil {
		return 0, p.errorAt(p.pos, "invalid unicode escape")
	}
	p.pos += 4
	return rune(n), nil
}

func (p *parser) parseNumber() (*Node, error) {
	start := p.pos

	if p.src[p.pos] == '-' {
		p.pos++
	}

	// Integer part: a single zero or a nonzero digit run
	switch {
	case p.pos < len(p.src) && p.src[p.pos] == '0':
		p.pos++
	case p.pos < len(p.src) && p.src[p.pos] >= '1' && p.src[p.pos] <= '9':
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	default:
		return nil, p.errorAt(start, "invalid number")
	}

	// Fraction
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		if p.pos >= len(p.src) || !isDigit(p.src[p.pos]) {
			return nil, p.errorAt(start, "invalid number")
		}
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}

	// Exponent
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		if p.pos >= len(p.src) || !isDigit(p.src[p.pos]) {
			return nil, p.errorAt(start, "invalid number")
		}
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}

	raw := p.src[start:p.pos]
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, p.errorAt(start, "invalid number")
	}

	return &Node{
		Kind:  KindNumber,
		Value: value,
		Raw:   raw,
		Start: start,
		End:   p.pos,
	}, nil
}

func (p *parser) parseBool() (*Node, error) {
	start := p.pos
	if strings.HasPrefix(p.src[p.pos:], "true") {
		p.pos += 4
		return &Node{Kind: KindBool, Value: true, Raw: "true", Start: start, End: p.pos}, nil
	}
	if strings.HasPrefix(p.src[p.pos:], "false") {
		p.pos += 5
		return &Node{Kind: KindBool, Value: false, Raw: "false", Start: start, End: p.pos}, nil
	}
	return nil, p.errorAt(start, fmt.Sprintf("unexpected %s", describeByte(p.src[start])))
}

func (p *parser) parseNull() (*Node, error) {
	start := p.pos
	if strings.HasPrefix(p.src[p.pos:], "null") {
		p.pos += 4
		return &Node{Kind: KindNull, Value: nil, Raw: "null", Start: start, End: p.pos}, nil
	}
	return nil, p.errorAt(start, fmt.Sprintf("unexpected %s", describeByte(p.src[start])))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorAt(offset int, msg string) *ParseError {
	if offset > len(p.src) {
		offset = len(p.src)
	}
	line, column := LineColumn(p.src, offset)
	return &ParseError{Offset: offset, Line: line, Column: column, Msg: msg}
}

func (p *parser) expectedAt(what string) *ParseError {
	if p.pos >= len(p.src) {
		return p.errorAt(p.pos, "unexpected end of input, expected "+what)
	}
	return p.errorAt(p.pos, fmt.Sprintf("expected %s, found %s", what, describeByte(p.src[p.pos])))
}

// LineColumn converts a byte offset into 1-based line and column numbers.
// Columns count runes from the start of the line.
func LineColumn(text string, offset int) (line, column int) {
	if offset > len(text) {
		offset = len(text)
	}
	lineStart := 0
	line = 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	column = utf8.RuneCountInString(text[lineStart:offset]) + 1
	return line, column
}

func describeByte(c byte) string {
	if c == '\n' {
		return "end of line"
	}
	if c < 0x20 || c >= utf8.RuneSelf {
		return fmt.Sprintf("character 0x%02x", c)
	}
	return fmt.Sprintf("character '%c'", c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
