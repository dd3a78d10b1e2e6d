// Package score persists the high score between games.
package score

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Store loads and saves a single high score.
type Store interface {
	// Load returns the stored value. A store that has never been written
	// returns ErrNotFound.
	Load() (int, error)
	Save(score int) error
}

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no high score stored")

// LoadOrZero reads the high score, treating a missing, unreadable or negative
// value as 0. Failures other than ErrNotFound are logged.
func LoadOrZero(s Store, logger *log.Logger) int {
	if s == nil {
		return 0
	}
	v, err := s.Load()
	if err != nil {
		if !errors.Is(err, ErrNotFound) && logger != nil {
			logger.Warn("Failed to load high score", "err", err)
		}
		return 0
	}
	return max(v, 0)
}

// document is the on-disk TOML layout.
type document struct {
	HighScore int `toml:"high_score"`
}

// FileStore keeps the high score in a small TOML file.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var doc document
	if _, err := toml.DecodeFile(f.Path, &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to read high score: %w", err)
	}
	return doc.HighScore, nil
}

// Save writes the score to a temporary file and renames it into place so a
// crash never leaves a truncated file behind.
func (f *FileStore) Save(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(document{HighScore: score}); err != nil {
		return fmt.Errorf("failed to encode high score: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create score directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to replace high score: %w", err)
	}
	return nil
}

// MemoryStore keeps the high score in memory. The zero value is empty.
type MemoryStore struct {
	mu    sync.Mutex
	value int
	set   bool
	// SaveErr, when set, is returned by Save instead of storing.
	SaveErr error
}

func (m *MemoryStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return 0, ErrNotFound
	}
	return m.value, nil
}

func (m *MemoryStore) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.value, m.set = score, true
	return nil
}

// unsafeName matches characters not allowed in per-user file names.
var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Dir hands out one FileStore per user below a base directory.
type Dir struct {
	Base string
}

// For returns the store for user. Empty or unusable names share the
// "anonymous" file.
func (d Dir) For(user string) *FileStore {
	name := unsafeName.ReplaceAllString(user, "_")
	if name == "" || name == "." || name == ".." {
		name = "anonymous"
	}
	return NewFileStore(filepath.Join(d.Base, name+".toml"))
}
