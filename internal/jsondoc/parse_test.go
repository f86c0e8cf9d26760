package jsondoc

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		value any
	}{
		{`"hello"`, KindString, "hello"},
		{`42`, KindNumber, float64(42)},
		{`-3.25`, KindNumber, -3.25},
		{`1e3`, KindNumber, float64(1000)},
		{`true`, KindBool, true},
		{`false`, KindBool, false},
		{`null`, KindNull, nil},
	}

	for _, tt := range tests {
		root, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if root.Kind != tt.kind {
			t.Errorf("Parse(%q): expected kind %v, got %v", tt.input, tt.kind, root.Kind)
		}
		if !reflect.DeepEqual(root.Value, tt.value) {
			t.Errorf("Parse(%q): expected value %v, got %v", tt.input, tt.value, root.Value)
		}
		if root.Raw != tt.input {
			t.Errorf("Parse(%q): expected raw %q, got %q", tt.input, tt.input, root.Raw)
		}
		if root.Start != 0 || root.End != len(tt.input) {
			t.Errorf("Parse(%q): expected range [0,%d), got [%d,%d)", tt.input, len(tt.input), root.Start, root.End)
		}
	}
}

func TestParseObjectOrder(t *testing.T) {
	root, err := Parse(`{"zebra":1,"apple":2,"mango":3}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if root.Kind != KindObject {
		t.Fatalf("Expected object root, got %v", root.Kind)
	}
	if len(root.Children) != 3 {
		t.Fatalf("Expected 3 children, got %d", len(root.Children))
	}

	// Document order, never sorted
	keys := []string{root.Children[0].Key, root.Children[1].Key, root.Children[2].Key}
	expected := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}
}

func TestParseNested(t *testing.T) {
	input := `{"a":1,"b":[2,3]}`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(root.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(root.Children))
	}

	a := root.Children[0]
	if a.Key != "a" || a.Kind != KindNumber || a.Value != float64(1) {
		t.Errorf("Unexpected first child: key=%q kind=%v value=%v", a.Key, a.Kind, a.Value)
	}

	b := root.Children[1]
	if b.Key != "b" || b.Kind != KindArray {
		t.Fatalf("Unexpected second child: key=%q kind=%v", b.Key, b.Kind)
	}
	if len(b.Children) != 2 {
		t.Fatalf("Expected 2 array elements, got %d", len(b.Children))
	}
	if b.Children[0].Key != "0" || b.Children[1].Key != "1" {
		t.Errorf("Expected index keys 0 and 1, got %q and %q", b.Children[0].Key, b.Children[1].Key)
	}
	if b.Children[0].Value != float64(2) || b.Children[1].Value != float64(3) {
		t.Errorf("Unexpected element values: %v, %v", b.Children[0].Value, b.Children[1].Value)
	}
}

func TestParseSourceRanges(t *testing.T) {
	input := `{"a": 1, "b": [2, 3], "c": {"d": "x"}}`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Every node's source range must reparse to a value equal to the node's
	var check func(n *Node)
	check = func(n *Node) {
		sub := input[n.Start:n.End]
		subRoot, err := Parse(sub)
		if err != nil {
			t.Errorf("Range of %s %q does not reparse: %v", n.Path(), sub, err)
			return
		}
		if !reflect.DeepEqual(decode(subRoot), decode(n)) {
			t.Errorf("Range of %s reparsed to %v, expected %v", n.Path(), decode(subRoot), decode(n))
		}
		for _, child := range n.Children {
			check(child)
		}
	}
	check(root)

	if root.Start != 0 || root.End != len(input) {
		t.Errorf("Root range [%d,%d) should span the whole input", root.Start, root.End)
	}
}

func TestParseKeyRanges(t *testing.T) {
	input := `{"name": "x"}`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	child := root.Children[0]
	if got := input[child.KeyStart:child.KeyEnd]; got != `"name"` {
		t.Errorf("Expected key range to cover %q, got %q", `"name"`, got)
	}
	if got := input[child.Start:child.End]; got != `"x"` {
		t.Errorf("Expected value range to cover %q, got %q", `"x"`, got)
	}
}

func TestParseStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"quote \" slash \\ solidus \/"`, `quote " slash \ solidus /`},
		{`"é"`, "é"},
		{`"😀"`, "😀"},
		{`"héllo"`, "héllo"},
	}

	for _, tt := range tests {
		root, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if root.Value != tt.value {
			t.Errorf("Parse(%q): expected %q, got %q", tt.input, tt.value, root.Value)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{`{"a":}`, 5},     // error at the '}'
		{`[1,]`, 3},       // error at the ']'
		{`{"a":1`, 6},     // truncated object
		{`"unclosed`, 9},  // unterminated string
		{`{1: 2}`, 1},     // non-string key
		{`{"a":1} x`, 8},  // trailing garbage
		{`tru`, 0},        // bad literal
		{`01`, 1},         // leading zero leaves trailing digit
		{``, 0},           // empty input
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if err == nil {
			t.Errorf("Parse(%q): expected error, got none", tt.input)
			continue
		}
		perr, ok := err.(*ParseError)
		if !ok {
			t.Errorf("Parse(%q): expected *ParseError, got %T", tt.input, err)
			continue
		}
		if perr.Offset != tt.offset {
			t.Errorf("Parse(%q): expected error offset %d, got %d (%s)", tt.input, tt.offset, perr.Offset, perr.Msg)
		}
	}
}

func TestParseErrorLineColumn(t *testing.T) {
	input := "{\n  \"a\": ,\n}"
	_, err := Parse(input)
	if err == nil {
		t.Fatal("Expected parse error")
	}

	perr := err.(*ParseError)
	if perr.Line != 2 {
		t.Errorf("Expected error on line 2, got %d", perr.Line)
	}
	if perr.Column != 8 {
		t.Errorf("Expected error at column 8, got %d", perr.Column)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("Error string should mention the line: %q", perr.Error())
	}
}

func TestNodeAtOffset(t *testing.T) {
	input := `{"a": 1, "b": [2, 3]}`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Offset inside a leaf returns the leaf, never an ancestor
	a := root.Children[0]
	if got := NodeAtOffset(root, a.Start); got != a {
		t.Errorf("Expected leaf 'a' at offset %d, got %v", a.Start, got)
	}

	three := root.Children[1].Children[1]
	for off := three.Start; off < three.End; off++ {
		if got := NodeAtOffset(root, off); got != three {
			t.Errorf("Expected element [1] at offset %d, got %s", off, got.Path())
		}
	}

	// Offset on structural characters resolves to the enclosing container
	if got := NodeAtOffset(root, 0); got != root {
		t.Errorf("Expected root at offset 0, got %v", got)
	}

	// Out-of-range offsets return nil
	if got := NodeAtOffset(root, len(input)+5); got != nil {
		t.Errorf("Expected nil beyond the document, got %s", got.Path())
	}
	if got := NodeAtOffset(nil, 0); got != nil {
		t.Error("Expected nil for nil root")
	}
}

func TestNodePath(t *testing.T) {
	input := `{"users": [{"name": "ann"}]}`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	name := root.Children[0].Children[0].Children[0]
	if got := name.Path(); got != "$.users[0].name" {
		t.Errorf("Expected path $.users[0].name, got %s", got)
	}
	if got := root.Path(); got != "$" {
		t.Errorf("Expected root path $, got %s", got)
	}

	if found := FindByPath(root, "$.users[0].name"); found != name {
		t.Error("FindByPath did not locate the name node")
	}
	if found := FindByPath(root, "$.missing"); found != nil {
		t.Error("FindByPath should return nil for absent paths")
	}
}

func TestNodeLabelsAndPreviews(t *testing.T) {
	root, err := Parse(`{"a": {"x": 1, "y": 2}, "b": [1], "c": "a long enough string value"}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := root.Children[0].Preview(); got != "{2 keys}" {
		t.Errorf("Expected object preview {2 keys}, got %q", got)
	}
	if got := root.Children[1].Preview(); got != "[1 item]" {
		t.Errorf("Expected array preview [1 item], got %q", got)
	}
	if got := root.Children[1].Children[0].Label(); got != "[0]" {
		t.Errorf("Expected array element label [0], got %q", got)
	}
	if got := root.Children[2].Label(); got != "c" {
		t.Errorf("Expected member label c, got %q", got)
	}
}

func TestPreviewTruncatesOnRunes(t *testing.T) {
	long := `"` + strings.Repeat("é", 60) + `"`
	root, err := Parse(`{"s": ` + long + `}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got := root.Children[0].Preview()
	if !utf8.ValidString(got) {
		t.Errorf("Preview produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected truncated preview to end with ellipsis, got %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 40 {
		t.Errorf("Expected 40-rune preview, got %d runes", n)
	}
}

func TestLineColumn(t *testing.T) {
	text := "ab\ncdé\nf"

	line, col := LineColumn(text, 0)
	if line != 1 || col != 1 {
		t.Errorf("Offset 0: expected 1:1, got %d:%d", line, col)
	}

	line, col = LineColumn(text, 4)
	if line != 2 || col != 2 {
		t.Errorf("Offset 4: expected 2:2, got %d:%d", line, col)
	}

	// é is two bytes but one column
	line, col = LineColumn(text, 7)
	if line != 2 || col != 4 {
		t.Errorf("Offset 7: expected 2:4, got %d:%d", line, col)
	}
}

// decode converts a node back into plain Go values for deep comparison
func decode(n *Node) any {
	switch n.Kind {
	case KindObject:
		m := make(map[string]any, len(n.Children))
		for _, child := range n.Children {
			m[child.Key] = decode(child)
		}
		return m
	case KindArray:
		s := make([]any, 0, len(n.Children))
		for _, child := range n.Children {
			s = append(s, decode(child))
		}
		return s
	default:
		return n.Value
	}
}
