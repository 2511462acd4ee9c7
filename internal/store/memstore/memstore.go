// Package memstore is an in-memory KV used by tests and --ephemeral runs.
package memstore

import "sync"

type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Read(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Writes reports how many Write calls succeeded.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) Close() error { return nil }
