package session

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenFilesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	paths := []string{"/tmp/a.json", "/tmp/b.json", "/tmp/c.json"}
	if err := s.SaveOpenFiles(paths, 1); err != nil {
		t.Fatalf("SaveOpenFiles failed: %v", err)
	}

	got, active, err := s.OpenFiles()
	if err != nil {
		t.Fatalf("OpenFiles failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 paths, got %d", len(got))
	}
	for i := range paths {
		if got[i] != paths[i] {
			t.Errorf("Path %d: expected %q, got %q", i, paths[i], got[i])
		}
	}
	if active != 1 {
		t.Errorf("Expected active index 1, got %d", active)
	}

	// Saving again replaces, not appends
	if err := s.SaveOpenFiles([]string{"/tmp/only.json"}, 0); err != nil {
		t.Fatalf("SaveOpenFiles failed: %v", err)
	}
	got, active, err = s.OpenFiles()
	if err != nil {
		t.Fatalf("OpenFiles failed: %v", err)
	}
	if len(got) != 1 || got[0] != "/tmp/only.json" || active != 0 {
		t.Errorf("Unexpected replacement result: %v, active %d", got, active)
	}
}

func TestOpenFilesEmpty(t *testing.T) {
	s := newTestStore(t)

	paths, active, err := s.OpenFiles()
	if err != nil {
		t.Fatalf("OpenFiles failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Expected no paths, got %v", paths)
	}
	if active != -1 {
		t.Errorf("Expected active index -1, got %d", active)
	}
}

func TestRecentFiles(t *testing.T) {
	s := newTestStore(t)

	for _, p := range []string{"/tmp/1.json", "/tmp/2.json", "/tmp/3.json"} {
		if err := s.TouchRecent(p, 10); err != nil {
			t.Fatalf("TouchRecent failed: %v", err)
		}
	}

	entries, err := s.RecentFiles(10)
	if err != nil {
		t.Fatalf("RecentFiles failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	// Touching an existing path must not duplicate it
	if err := s.TouchRecent("/tmp/2.json", 10); err != nil {
		t.Fatalf("TouchRecent failed: %v", err)
	}
	entries, err = s.RecentFiles(10)
	if err != nil {
		t.Fatalf("RecentFiles failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 entries after re-touch, got %d", len(entries))
	}
}

func TestRecentFilesTrimmed(t *testing.T) {
	s := newTestStore(t)

	for _, p := range []string{"/a", "/b", "/c", "/d"} {
		if err := s.TouchRecent(p, 2); err != nil {
			t.Fatalf("TouchRecent failed: %v", err)
		}
	}

	entries, err := s.RecentFiles(10)
	if err != nil {
		t.Fatalf("RecentFiles failed: %v", err)
	}
	if len(entries) > 2 {
		t.Errorf("Expected at most 2 entries, got %d", len(entries))
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	theme, err := s.Theme()
	if err != nil {
		t.Fatalf("Theme failed: %v", err)
	}
	if theme != "" {
		t.Errorf("Expected empty theme before save, got %q", theme)
	}

	if err := s.SaveTheme("light"); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}
	if err := s.SaveTheme("default"); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}

	theme, err = s.Theme()
	if err != nil {
		t.Fatalf("Theme failed: %v", err)
	}
	if theme != "default" {
		t.Errorf("Expected theme 'default', got %q", theme)
	}

	if err := s.SaveLastDir("/home/user/json"); err != nil {
		t.Fatalf("SaveLastDir failed: %v", err)
	}
	dir, err := s.LastDir()
	if err != nil {
		t.Fatalf("LastDir failed: %v", err)
	}
	if dir != "/home/user/json" {
		t.Errorf("Expected last dir '/home/user/json', got %q", dir)
	}
}
