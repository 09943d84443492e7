package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by Last before anything has been saved.
var ErrNotFound = errors.New("no output stored yet")

// DefaultDir is the directory generated output is kept in.
const DefaultDir = "gif"

// Store keeps the most recent rendered output per extension on disk as
// <dir>/last.<ext>.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Path returns where output with the given extension is stored.
func (s *Store) Path(ext string) string {
	return filepath.Join(s.dir, "last."+ext)
}

// Save replaces the stored output for ext and returns its path. The bytes are
// written to a temporary file first so readers never see a partial file.
func (s *Store) Save(ext string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", s.dir, err)
	}
	tmp, err := os.CreateTemp(s.dir, "last-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing output: %w", err)
	}
	path := s.Path(ext)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("replacing %s: %w", path, err)
	}
	return path, nil
}

// Last returns the stored output for ext.
func (s *Store) Last(ext string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.Path(ext))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading stored output: %w", err)
	}
	return data, nil
}
