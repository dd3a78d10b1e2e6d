package score

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "high.toml"))

	if _, err := s.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before first save, got %v", err)
	}
	if err := s.Save(120); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != 120 {
		t.Errorf("Expected 120, got %d", got)
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "high_score = 120") {
		t.Errorf("Unexpected file contents %q", raw)
	}

	entries, _ := os.ReadDir(filepath.Dir(s.Path))
	if len(entries) != 1 {
		t.Errorf("Expected only the score file to remain, got %d entries", len(entries))
	}
}

func TestLoadOrZero(t *testing.T) {
	logger := log.New(io.Discard)

	if got := LoadOrZero(&MemoryStore{}, logger); got != 0 {
		t.Errorf("Expected 0 for empty store, got %d", got)
	}

	path := filepath.Join(t.TempDir(), "high.toml")
	if err := os.WriteFile(path, []byte("high_score = \"lots\""), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadOrZero(NewFileStore(path), logger); got != 0 {
		t.Errorf("Expected 0 for corrupt file, got %d", got)
	}

	m := &MemoryStore{}
	m.Save(-5)
	if got := LoadOrZero(m, logger); got != 0 {
		t.Errorf("Expected negative value to read as 0, got %d", got)
	}

	m.Save(42)
	if got := LoadOrZero(m, nil); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := LoadOrZero(nil, logger); got != 0 {
		t.Errorf("Expected 0 for nil store, got %d", got)
	}
}

func TestMemoryStoreSaveError(t *testing.T) {
	m := &MemoryStore{SaveErr: errors.New("disk full")}
	if err := m.Save(1); err == nil {
		t.Error("Expected configured save error")
	}
	if _, err := m.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected nothing stored, got %v", err)
	}
}

func TestDirSanitizesNames(t *testing.T) {
	d := Dir{Base: "/scores"}
	tests := map[string]string{
		"alice":     "/scores/alice.toml",
		"../../etc": "/scores/.._.._etc.toml",
		"":          "/scores/anonymous.toml",
		"..":        "/scores/anonymous.toml",
		"bob smith": "/scores/bob_smith.toml",
	}
	for user, want := range tests {
		if got := d.For(user).Path; got != want {
			t.Errorf("For(%q) = %q, want %q", user, got, want)
		}
	}
}
