package store_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// backends returns one fresh instance of every KV implementation.
func backends(t *testing.T) map[string]store.Backend {
	t.Helper()
	db, err := sqlitestore.Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]store.Backend{
		"json":   jsonstore.New(t.TempDir(), ""),
		"sqlite": db,
		"memory": memstore.New(),
	}
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Read("missing"); ok || err != nil {
				t.Fatalf("Read(missing) = ok %v, err %v", ok, err)
			}

			for _, v := range [][]byte{nil, {}, []byte(`[{"id":"1"}]`), []byte("second")} {
				if err := kv.Write("k", v); err != nil {
					t.Fatalf("Write: %v", err)
				}
				got, ok, err := kv.Read("k")
				if err != nil || !ok {
					t.Fatalf("Read after write: ok %v, err %v", ok, err)
				}
				if !bytes.Equal(got, v) {
					t.Errorf("got %q, want %q", got, v)
				}
			}

			if err := kv.Write("other", []byte("x")); err != nil {
				t.Fatal(err)
			}
			if got, _, _ := kv.Read("k"); string(got) != "second" {
				t.Errorf("keys are not independent: %q", got)
			}
		})
	}
}

func TestJSONStoreLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := jsonstore.New(dir, jsonstore.ExtFor("YAML"))
	if err := s.Write("SavedTasksV2", []byte("- id: a\n")); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "SavedTasksV2.yaml")
	fi, err := os.Stat(p)
	if err != nil {
		t.Fatalf("expected %s: %v", p, err)
	}
	if fi.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v", fi.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
	if _, _, err := s.Read(""); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestMemStoreCopies(t *testing.T) {
	s := memstore.New()
	v := []byte("abc")
	s.Write("k", v)
	v[0] = 'X'
	got, _, _ := s.Read("k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}
	if s.Writes() != 1 {
		t.Errorf("Writes() = %d", s.Writes())
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "kv.db")
	db, err := sqlitestore.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Write("k", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = sqlitestore.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	got, ok, err := db.Read("k")
	if err != nil || !ok || string(got) != "v1" {
		t.Errorf("Read = %q, %v, %v", got, ok, err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{"", store.BackendJSON, store.BackendSQLite, store.BackendMemory} {
		b, err := store.Open(store.Options{Backend: backend, Dir: dir})
		if err != nil {
			t.Fatalf("Open(%q): %v", backend, err)
		}
		if err := b.Write("k", []byte("v")); err != nil {
			t.Errorf("%q write: %v", backend, err)
		}
		b.Close()
	}
	if _, err := os.Stat(filepath.Join(dir, sqlitestore.DefaultFileName)); err != nil {
		t.Errorf("sqlite file missing: %v", err)
	}
	if _, err := store.Open(store.Options{Backend: "redis"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
