package store

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestLastBeforeSave(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Last("gif"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := New(dir)
	path, err := s.Save("gif", []byte("first"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "last.gif") {
		t.Fatalf("path = %q", path)
	}
	if _, err := s.Save("gif", []byte("second")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Last("gif")
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !slices.Equal(got, []byte("second")) {
		t.Fatalf("Last = %q", got)
	}
	if _, err := s.Last("avi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other extension err = %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestDefaultDir(t *testing.T) {
	if got := New("").Path("gif"); got != filepath.Join(DefaultDir, "last.gif") {
		t.Fatalf("Path = %q", got)
	}
}
