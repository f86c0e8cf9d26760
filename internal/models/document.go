package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/calebyang/lazyjson/internal/jsondoc"
	"github.com/google/uuid"
)

// ErrNotUTF8 is returned when a file's contents are not valid UTF-8
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// maxUndoDepth caps the per-document history; the oldest snapshot falls
// off when it is exceeded
const maxUndoDepth = 100

// Document is the in-memory text buffer for one open tab. The tree is
// rebuilt wholesale from the text on every change; it is nil while the
// text does not parse.
type Document struct {
	ID       uuid.UUID
	Path     string // empty for unsaved buffers
	Text     string
	Dirty    bool
	Tree     *jsondoc.Node
	ParseErr *jsondoc.ParseError

	// Text snapshots for undo/redo. Every SetText pushes the previous
	// text, so single keystrokes and replace-all are equally reversible.
	undo []string
	redo []string
}

// NewDocument creates an empty, unsaved document
func NewDocument() *Document {
	d := &Document{ID: uuid.New()}
	d.Reparse()
	return d
}

// NewDocumentFromText creates an unsaved document with initial content
func NewDocumentFromText(text string) *Document {
	d := &Document{ID: uuid.New(), Text: text}
	d.Reparse()
	return d
}

// LoadDocument reads a file into a new document. Content must be UTF-8;
// anything else fails with ErrNotUTF8 so the caller can surface it without
// losing other open buffers.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("open %s: %w", path, ErrNotUTF8)
	}

	d := &Document{
		ID:   uuid.New(),
		Path: path,
		Text: string(data),
	}
	d.Reparse()
	return d, nil
}

// SetText replaces the buffer content and rebuilds the tree. The previous
// content goes onto the undo stack and any redo history is invalidated.
func (d *Document) SetText(text string) {
	if text == d.Text {
		return
	}
	d.undo = append(d.undo, d.Text)
	if len(d.undo) > maxUndoDepth {
		d.undo = d.undo[1:]
	}
	d.redo = nil
	d.Text = text
	d.Dirty = true
	d.Reparse()
}

// Undo restores the previous text snapshot. Returns false when there is
// nothing to undo.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	d.redo = append(d.redo, d.Text)
	d.Text = d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.Dirty = true
	d.Reparse()
	return true
}

// Redo reapplies the most recently undone change. Returns false when
// there is nothing to redo.
func (d *Document) Redo() bool {
	if len(d.redo) == 0 {
		return false
	}
	d.undo = append(d.undo, d.Text)
	d.Text = d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.Dirty = true
	d.Reparse()
	return true
}

// Reparse rebuilds the tree from the current text. On failure the previous
// tree is discarded and the error kept; the text itself is never touched.
func (d *Document) Reparse() {
	root, err := jsondoc.Parse(d.Text)
	if err != nil {
		d.Tree = nil
		d.ParseErr = err.(*jsondoc.ParseError)
		return
	}
	d.Tree = root
	d.ParseErr = nil
}

// Valid reports whether the current text parses as JSON
func (d *Document) Valid() bool {
	return d.ParseErr == nil
}

// Title returns the display name for tab bars
func (d *Document) Title() string {
	if d.Path == "" {
		return "Untitled"
	}
	return filepath.Base(d.Path)
}

// Save writes the text back to the document's path. The caller must have
// set a path first (via SaveAs for new buffers).
func (d *Document) Save() error {
	if d.Path == "" {
		return errors.New("document has no path")
	}
	if err := os.WriteFile(d.Path, []byte(d.Text), 0644); err != nil {
		return fmt.Errorf("save %s: %w", d.Path, err)
	}
	d.Dirty = false
	return nil
}

// SaveAs assigns a new path and saves
func (d *Document) SaveAs(path string) error {
	d.Path = path
	return d.Save()
}
