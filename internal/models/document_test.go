package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDocument(t *testing.T) {
	d := NewDocument()

	if d.Path != "" {
		t.Errorf("Expected empty path, got %q", d.Path)
	}
	if d.Dirty {
		t.Error("New document should not be dirty")
	}
	if d.Title() != "Untitled" {
		t.Errorf("Expected title 'Untitled', got %q", d.Title())
	}
	// An empty buffer is not valid JSON; that is an error state, not a crash
	if d.Valid() {
		t.Error("Empty document should not be valid JSON")
	}
}

func TestLoadDocument(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.json")
	content := `{"name": "test", "items": [1, 2]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	d, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	if d.Text != content {
		t.Errorf("Expected text %q, got %q", content, d.Text)
	}
	if d.Dirty {
		t.Error("Freshly loaded document should not be dirty")
	}
	if !d.Valid() {
		t.Errorf("Expected valid JSON, got parse error: %v", d.ParseErr)
	}
	if d.Tree == nil || len(d.Tree.Children) != 2 {
		t.Error("Expected a parsed tree with 2 members")
	}
	if d.Title() != "data.json" {
		t.Errorf("Expected title 'data.json', got %q", d.Title())
	}
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoadDocumentNotUTF8(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "binary.json")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := LoadDocument(path)
	if !errors.Is(err, ErrNotUTF8) {
		t.Errorf("Expected ErrNotUTF8, got %v", err)
	}
}

func TestSetTextReparses(t *testing.T) {
	d := NewDocumentFromText(`{"a": 1}`)
	if !d.Valid() {
		t.Fatal("Initial text should parse")
	}

	d.SetText(`{"a": `)
	if !d.Dirty {
		t.Error("SetText should mark the document dirty")
	}
	if d.Valid() {
		t.Error("Broken text should invalidate the document")
	}
	if d.Tree != nil {
		t.Error("Tree should be nil after a failed parse")
	}
	// The raw text is kept even when it does not parse
	if d.Text != `{"a": ` {
		t.Errorf("Text changed unexpectedly: %q", d.Text)
	}

	d.SetText(`{"a": 2}`)
	if !d.Valid() {
		t.Error("Fixed text should parse again")
	}
	if d.Tree == nil {
		t.Error("Tree should be rebuilt after a successful parse")
	}
}

func TestSetTextNoopKeepsClean(t *testing.T) {
	d := NewDocumentFromText(`{"a": 1}`)
	d.SetText(`{"a": 1}`)
	if d.Dirty {
		t.Error("Setting identical text should not mark the document dirty")
	}
}

func TestUndoRedo(t *testing.T) {
	d := NewDocumentFromText(`{"a": 1}`)
	d.SetText(`{"a": 2}`)
	d.SetText(`{"a": 3}`)

	if !d.Undo() {
		t.Fatal("Undo should succeed after edits")
	}
	if d.Text != `{"a": 2}` {
		t.Errorf("Expected previous text after undo, got %q", d.Text)
	}
	if d.Tree == nil {
		t.Error("Tree should be rebuilt after undo")
	}

	if !d.Undo() {
		t.Fatal("Second undo should succeed")
	}
	if d.Text != `{"a": 1}` {
		t.Errorf("Expected original text after two undos, got %q", d.Text)
	}

	if !d.Redo() {
		t.Fatal("Redo should succeed after undo")
	}
	if d.Text != `{"a": 2}` {
		t.Errorf("Expected redone text, got %q", d.Text)
	}
}

func TestUndoRedoEmptyStacks(t *testing.T) {
	d := NewDocumentFromText(`{"a": 1}`)
	if d.Undo() {
		t.Error("Undo with no history should return false")
	}
	if d.Redo() {
		t.Error("Redo with no history should return false")
	}
}

func TestRedoClearedByNewEdit(t *testing.T) {
	d := NewDocumentFromText(`{"a": 1}`)
	d.SetText(`{"a": 2}`)
	if !d.Undo() {
		t.Fatal("Undo should succeed")
	}

	d.SetText(`{"a": 9}`)
	if d.Redo() {
		t.Error("Redo should be cleared by a new edit")
	}
	if d.Text != `{"a": 9}` {
		t.Errorf("Text changed unexpectedly: %q", d.Text)
	}
}

func TestSaveAndSaveAs(t *testing.T) {
	tmpDir := t.TempDir()

	d := NewDocumentFromText(`{"x": true}`)
	d.Dirty = true

	if err := d.Save(); err == nil {
		t.Error("Save without a path should fail")
	}

	path := filepath.Join(tmpDir, "out.json")
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	if d.Dirty {
		t.Error("Save should clear the dirty flag")
	}
	if d.Path != path {
		t.Errorf("Expected path %q, got %q", path, d.Path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(data) != `{"x": true}` {
		t.Errorf("Saved content mismatch: %q", string(data))
	}
}
