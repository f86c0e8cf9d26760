package session

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const (
	settingTheme   = "theme"
	settingLastDir = "last_dir"
)

// RecentFile is one entry in the recently-opened list
type RecentFile struct {
	Path     string
	OpenedAt time.Time
}

// Store persists the session between runs: the open file list, recently
// opened files, the active theme and the last-used directory.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the session database location under the user config
// directory
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazyjson", "session.db"), nil
}

// NewStore opens (and if needed creates) the session database
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// SaveOpenFiles replaces the stored open file list. activeIdx marks the
// focused tab; pass -1 when no file-backed tab is active.
func (s *Store) SaveOpenFiles(paths []string, activeIdx int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM open_files`); err != nil {
		return err
	}
	for i, path := range paths {
		active := 0
		if i == activeIdx {
			active = 1
		}
		if _, err := tx.Exec(`INSERT INTO open_files (path, active) VALUES (?, ?)`, path, active); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// OpenFiles returns the stored open file list and the index of the active
// tab (-1 when none was recorded)
func (s *Store) OpenFiles() ([]string, int, error) {
	rows, err := s.db.Query(`SELECT path, active FROM open_files ORDER BY id`)
	if err != nil {
		return nil, -1, err
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	activeIdx := -1
	for rows.Next() {
		var path string
		var active int
		if err := rows.Scan(&path, &active); err != nil {
			return nil, -1, err
		}
		if active != 0 {
			activeIdx = len(paths)
		}
		paths = append(paths, path)
	}

	return paths, activeIdx, rows.Err()
}

// TouchRecent records that a file was opened now and trims the list to
// maxEntries
func (s *Store) TouchRecent(path string, maxEntries int) error {
	_, err := s.db.Exec(`
		INSERT INTO recent_files (path, opened_at) VALUES (?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET opened_at = CURRENT_TIMESTAMP`, path)
	if err != nil {
		return err
	}

	if maxEntries > 0 {
		_, err = s.db.Exec(`
			DELETE FROM recent_files WHERE path NOT IN (
				SELECT path FROM recent_files ORDER BY opened_at DESC LIMIT ?
			)`, maxEntries)
	}
	return err
}

// RecentFiles returns the most recently opened files, newest first
func (s *Store) RecentFiles(limit int) ([]RecentFile, error) {
	rows, err := s.db.Query(`
		SELECT path, opened_at FROM recent_files
		ORDER BY opened_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []RecentFile
	for rows.Next() {
		var e RecentFile
		var openedAt string
		if err := rows.Scan(&e.Path, &openedAt); err != nil {
			return nil, err
		}
		e.OpenedAt, _ = time.Parse("2006-01-02 15:04:05", openedAt)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// SaveTheme stores the active theme name
func (s *Store) SaveTheme(name string) error {
	return s.setSetting(settingTheme, name)
}

// Theme returns the stored theme name, or "" when none was saved
func (s *Store) Theme() (string, error) {
	return s.setting(settingTheme)
}

// SaveLastDir stores the directory of the last opened file
func (s *Store) SaveLastDir(dir string) error {
	return s.setSetting(settingLastDir, dir)
}

// LastDir returns the stored last-used directory, or "" when none was saved
func (s *Store) LastDir() (string, error) {
	return s.setting(settingLastDir)
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
