package tasklist

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/memstore"
)

func newStore(t *testing.T, kv *memstore.Store, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithIDGenerator(SequentialGenerator("t"))}, opts...)
	s := New(kv, opts...)
	s.Load()
	return s
}

// seeded returns a loaded store holding titles, all pending.
func seeded(t *testing.T, titles ...string) (*Store, *memstore.Store) {
	t.Helper()
	kv := memstore.New()
	s := newStore(t, kv)
	for _, title := range titles {
		if _, ok := s.Add(title); !ok {
			t.Fatalf("Add(%q) rejected", title)
		}
	}
	return s, kv
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

// reload simulates a restart over the same storage.
func reload(t *testing.T, kv *memstore.Store) []model.Task {
	t.Helper()
	s := New(kv)
	s.Load()
	return s.Tasks()
}

func TestStartupWithoutSnapshotIsEmpty(t *testing.T) {
	s := newStore(t, memstore.New())
	if !s.Loaded() {
		t.Fatal("expected store to be loaded")
	}
	if got := s.Len(); got != 0 {
		t.Errorf("expected empty list, got %d tasks", got)
	}
}

func TestAdd(t *testing.T) {
	s, kv := seeded(t)

	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Add(in); ok {
			t.Errorf("Add(%q) should be rejected", in)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("rejected adds changed the list: %v", s.Tasks())
	}
	if kv.Writes() != 0 {
		t.Errorf("rejected adds should not write, got %d writes", kv.Writes())
	}

	task, ok := s.Add("  X ")
	if !ok {
		t.Fatal("Add(X) rejected")
	}
	want := model.Task{ID: "t1", Title: "X", IsCompleted: false}
	if task != want {
		t.Errorf("got %+v, want %+v", task, want)
	}
	if got := s.Tasks(); !slices.Equal(got, []model.Task{want}) {
		t.Errorf("list = %+v", got)
	}

	s.Add("X")
	got := s.Tasks()
	if len(got) != 2 || got[0].ID == got[1].ID {
		t.Errorf("expected two tasks with distinct ids, got %+v", got)
	}
}

func TestToggle(t *testing.T) {
	s, _ := seeded(t, "A", "B", "C")

	if !s.Toggle("t2") {
		t.Fatal("Toggle(t2) found nothing")
	}
	got := s.Tasks()
	for _, task := range got {
		if want := task.ID == "t2"; task.IsCompleted != want {
			t.Errorf("task %s completed=%v, want %v", task.ID, task.IsCompleted, want)
		}
	}

	s.Toggle("t2")
	if s.Tasks()[1].IsCompleted {
		t.Error("toggling twice should restore the original value")
	}

	before := s.Tasks()
	if s.Toggle("nope") {
		t.Error("Toggle(unknown) reported a match")
	}
	if !slices.Equal(before, s.Tasks()) {
		t.Error("Toggle(unknown) changed the list")
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    []string
		removed int
	}{
		{"middle", []int{1}, []string{"A", "C"}, 1},
		{"ends", []int{0, 2}, []string{"B"}, 2},
		{"unordered with duplicates", []int{2, 0, 2}, []string{"B"}, 2},
		{"out of range", []int{3}, []string{"A", "B", "C"}, 0},
		{"negative", []int{-1}, []string{"A", "B", "C"}, 0},
		{"mixed", []int{1, 7}, []string{"A", "C"}, 1},
		{"all", []int{0, 1, 2}, []string{}, 3},
		{"none", nil, []string{"A", "B", "C"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := seeded(t, "A", "B", "C")
			if n := s.Delete(tt.indices...); n != tt.removed {
				t.Errorf("removed %d, want %d", n, tt.removed)
			}
			if got := titles(s.Tasks()); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPersistAfterMutation(t *testing.T) {
	s, kv := seeded(t, "A", "B", "C")

	steps := []struct {
		name string
		do   func()
	}{
		{"add", func() { s.Add("D") }},
		{"toggle", func() { s.Toggle("t1") }},
		{"delete", func() { s.Delete(1, 3) }},
		{"toggle back", func() { s.Toggle("t1") }},
		{"delete all", func() { s.Delete(0, 1) }},
	}
	for _, step := range steps {
		step.do()
		if got := reload(t, kv); !slices.Equal(got, s.Tasks()) {
			t.Fatalf("after %s: reloaded %+v, in memory %+v", step.name, got, s.Tasks())
		}
	}
}

func TestLoadRunsOnce(t *testing.T) {
	s, kv := seeded(t, "A")

	other := New(kv, WithIDGenerator(SequentialGenerator("o")))
	other.Load()
	other.Add("B")

	s.Load()
	if got := titles(s.Tasks()); !slices.Equal(got, []string{"A"}) {
		t.Errorf("second Load should not re-read storage, got %v", got)
	}
}

func TestMutationBeforeLoadKeepsSnapshot(t *testing.T) {
	tests := []struct {
		name string
		do   func(*Store)
		want []string
	}{
		{"add", func(s *Store) { s.Add("C") }, []string{"A", "B", "C"}},
		{"toggle", func(s *Store) { s.Toggle("t2") }, []string{"A", "B"}},
		{"delete", func(s *Store) { s.Delete(0) }, []string{"B"}},
		{"persist", func(s *Store) { s.Persist() }, []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, kv := seeded(t, "A", "B")

			fresh := New(kv, WithIDGenerator(SequentialGenerator("n")))
			tt.do(fresh)
			if !fresh.Loaded() {
				t.Error("mutation should load the store first")
			}
			got := reload(t, kv)
			if names := titles(got); !slices.Equal(names, tt.want) {
				t.Fatalf("persisted %v, want %v", names, tt.want)
			}
			if !slices.Equal(got, fresh.Tasks()) {
				t.Errorf("reloaded %+v, in memory %+v", got, fresh.Tasks())
			}
		})
	}

	_, kv := seeded(t, "A", "B")
	New(kv).Toggle("t2")
	if got := reload(t, kv); !got[1].IsCompleted {
		t.Errorf("toggle before load was lost: %+v", got)
	}
}

func TestAddStoresTrimmedTitle(t *testing.T) {
	space := rapid.SampledFrom([]string{"", " ", "\t", "\n", "\r\n", " \n "})
	rapid.Check(t, func(rt *rapid.T) {
		raw := space.Draw(rt, "lead") + rapid.String().Draw(rt, "title") + space.Draw(rt, "trail")
		kv := memstore.New()
		s := New(kv, WithCodec(YAMLCodec{}))

		task, ok := s.Add(raw)
		want := strings.TrimSpace(raw)
		if ok != (want != "") {
			rt.Fatalf("Add(%q) ok=%v", raw, ok)
		}
		if !ok {
			return
		}
		if task.Title != want {
			rt.Fatalf("Add(%q) stored %q, want %q", raw, task.Title, want)
		}
		again := New(kv, WithCodec(YAMLCodec{}))
		again.Load()
		if !slices.Equal(again.Tasks(), s.Tasks()) {
			rt.Fatalf("reloaded %+v, want %+v", again.Tasks(), s.Tasks())
		}
	})
}

func TestLoadMalformedSnapshot(t *testing.T) {
	kv := memstore.New()
	if err := kv.Write(DefaultKey, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	s := New(kv, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	s.Load()

	if s.Len() != 0 {
		t.Errorf("expected empty list, got %+v", s.Tasks())
	}
	if !strings.Contains(logs.String(), "snapshot decode failed") {
		t.Errorf("expected decode warning, got %q", logs.String())
	}

	if _, ok := s.Add("fresh"); !ok {
		t.Fatal("Add rejected")
	}
	if got := titles(reload(t, kv)); !slices.Equal(got, []string{"fresh"}) {
		t.Errorf("got %v", got)
	}
}

type failingCodec struct{ JSONCodec }

func (failingCodec) Encode([]model.Task) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestEncodeFailureKeepsPriorSnapshot(t *testing.T) {
	kv := memstore.New()
	s := newStore(t, kv)
	s.Add("A")
	prior, _, _ := kv.Read(DefaultKey)

	var logs bytes.Buffer
	broken := New(kv, WithCodec(failingCodec{}), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	broken.Load()
	broken.Add("B")

	if got := titles(broken.Tasks()); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("in-memory list = %v", got)
	}
	after, _, _ := kv.Read(DefaultKey)
	if !bytes.Equal(prior, after) {
		t.Errorf("snapshot changed after encode failure:\n%s", after)
	}
	if !strings.Contains(logs.String(), "write skipped") {
		t.Errorf("expected encode warning, got %q", logs.String())
	}
}

type failingKV struct{ *memstore.Store }

func (failingKV) Read(string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (failingKV) Write(string, []byte) error {
	return errors.New("disk gone")
}

func TestStorageErrorsAreSwallowed(t *testing.T) {
	s := New(failingKV{memstore.New()})
	s.Load()
	if s.Len() != 0 {
		t.Fatal("expected empty list")
	}
	if _, ok := s.Add("A"); !ok {
		t.Fatal("Add rejected")
	}
	if s.Len() != 1 {
		t.Error("failed write should not undo the mutation")
	}
}

func TestCustomKeyAndYAML(t *testing.T) {
	kv := memstore.New()
	s := newStore(t, kv, WithKey("other"), WithCodec(YAMLCodec{}))
	s.Add("A")

	if _, ok, _ := kv.Read(DefaultKey); ok {
		t.Error("default key should be untouched")
	}
	b, ok, _ := kv.Read("other")
	if !ok || !strings.Contains(string(b), "isCompleted: false") {
		t.Errorf("unexpected yaml snapshot %q", b)
	}

	again := New(kv, WithKey("other"), WithCodec(YAMLCodec{}))
	again.Load()
	if !slices.Equal(again.Tasks(), s.Tasks()) {
		t.Errorf("got %+v, want %+v", again.Tasks(), s.Tasks())
	}
}

func TestStats(t *testing.T) {
	s, _ := seeded(t, "A", "B", "C")
	s.Toggle("t3")
	if done, pending := s.Stats(); done != 1 || pending != 2 {
		t.Errorf("Stats() = %d, %d", done, pending)
	}
}

func TestSequentialGenerator(t *testing.T) {
	g := SequentialGenerator("id-")
	if a, b := g(), g(); a != "id-1" || b != "id-2" {
		t.Errorf("got %s, %s", a, b)
	}
}

func TestUUIDGeneratorUnique(t *testing.T) {
	g := UUIDGenerator()
	seen := map[string]bool{}
	for range 100 {
		id := g()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
