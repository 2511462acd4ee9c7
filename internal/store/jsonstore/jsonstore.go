package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File-backed storage. One file per key, human-readable, portable.
// No locking; fine for a local single-user CLI.

const defaultExt = ".json"

// Store keeps each key in <dir>/<key><ext>.
type Store struct {
	dir string
	ext string
}

// New returns a Store rooted at dir. An empty dir means the working
// directory; an empty ext means ".json".
func New(dir, ext string) *Store {
	if ext == "" {
		ext = defaultExt
	}
	return &Store{dir: dir, ext: ext}
}

// ExtFor maps a snapshot format name to a file extension.
func ExtFor(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		return ".yaml"
	}
	return defaultExt
}

func (s *Store) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dir := s.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	return filepath.Join(dir, filepath.Base(key)+s.ext), nil
}

// Path returns the file that holds key.
func (s *Store) Path(key string) (string, error) { return s.path(key) }

func (s *Store) Read(key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

// Write replaces the file through a temp file + rename so readers never see
// a partial snapshot.
func (s *Store) Write(key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
