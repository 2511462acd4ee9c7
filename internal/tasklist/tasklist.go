// Package tasklist owns the ordered task list and keeps its persisted
// snapshot in sync after every mutation.
//
// Storage and encoding failures are logged and swallowed: a bad snapshot
// loads as an empty list, and a failed write leaves the previous snapshot in
// place. Callers never see those errors.
package tasklist

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// DefaultKey is the KV key the list is stored under.
const DefaultKey = "SavedTasksV2"

// Store is the in-memory task list bound to one key of a KV.
// It is not safe for concurrent use.
type Store struct {
	kv    store.KV
	key   string
	codec Codec
	newID IDGenerator
	log   *slog.Logger

	tasks  []model.Task
	loaded bool
}

// Option configures a Store.
type Option func(*Store)

func WithKey(key string) Option { return func(s *Store) { s.key = key } }

func WithCodec(c Codec) Option { return func(s *Store) { s.codec = c } }

func WithIDGenerator(g IDGenerator) Option { return func(s *Store) { s.newID = g } }

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

// New returns an empty, not yet loaded Store over kv.
func New(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   DefaultKey,
		codec: JSONCodec{},
		newID: UUIDGenerator(),
		log:   logging.Discard(),
		tasks: []model.Task{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Loaded reports whether Load has run.
func (s *Store) Loaded() bool { return s.loaded }

// Tasks returns a copy of the list in display order.
func (s *Store) Tasks() []model.Task { return slices.Clone(s.tasks) }

func (s *Store) Len() int { return len(s.tasks) }

// Stats counts completed and pending tasks.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.tasks {
		if t.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}

// Load reads the snapshot once. Missing or undecodable data leaves the list
// empty. Later calls do nothing. Mutations call it themselves, so positions
// passed to Delete refer to the loaded list.
func (s *Store) Load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.tasks = []model.Task{}

	b, ok, err := s.kv.Read(s.key)
	if err != nil {
		s.log.Warn("snapshot read failed", "key", s.key, "err", err)
		return
	}
	if !ok {
		s.log.Debug("no snapshot, starting empty", "key", s.key)
		return
	}
	tasks, err := s.codec.Decode(b)
	if err != nil {
		s.log.Warn("snapshot decode failed, starting empty", "key", s.key, "codec", s.codec.Name(), "err", err)
		return
	}
	s.tasks = tasks
	s.log.Debug("snapshot loaded", "key", s.key, "tasks", len(tasks))
}

// Persist writes the whole list under the store key. An encode failure
// skips the write. A store that was never loaded loads first, so the
// snapshot is not replaced by a partial list.
func (s *Store) Persist() {
	s.Load()
	b, err := s.codec.Encode(s.tasks)
	if err != nil {
		if !errors.Is(err, ErrEncode) {
			err = errors.Join(ErrEncode, err)
		}
		s.log.Warn("snapshot encode failed, write skipped", "key", s.key, "codec", s.codec.Name(), "err", err)
		return
	}
	if err := s.kv.Write(s.key, b); err != nil {
		s.log.Warn("snapshot write failed", "key", s.key, "err", err)
		return
	}
	s.log.Debug("snapshot written", "key", s.key, "tasks", len(s.tasks), "bytes", len(b))
}

// Add appends a new pending task. Titles that are empty after trimming are
// ignored and reported with ok=false.
func (s *Store) Add(title string) (t model.Task, ok bool) {
	s.Load()
	title = strings.TrimSpace(title)
	if title == "" {
		s.log.Debug("add ignored: empty title")
		return model.Task{}, false
	}
	t = model.Task{ID: s.newID(), Title: title}
	s.tasks = append(s.tasks, t)
	s.log.Debug("task added", "id", t.ID)
	s.Persist()
	return t, true
}

// Toggle flips completion of the task with id. Unknown ids are a no-op.
func (s *Store) Toggle(id string) bool {
	s.Load()
	i := s.IndexOf(id)
	if i < 0 {
		s.log.Debug("toggle ignored: unknown id", "id", id)
		return false
	}
	s.tasks[i].IsCompleted = !s.tasks[i].IsCompleted
	s.log.Debug("task toggled", "id", id, "completed", s.tasks[i].IsCompleted)
	s.Persist()
	return true
}

// Delete removes the tasks at the given positions in one pass and returns
// how many were removed. Duplicate and out-of-range positions are ignored.
func (s *Store) Delete(indices ...int) int {
	s.Load()
	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(s.tasks) {
			drop[i] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}
	kept := make([]model.Task, 0, len(s.tasks)-len(drop))
	for i, t := range s.tasks {
		if _, gone := drop[i]; !gone {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.log.Debug("tasks deleted", "count", len(drop))
	s.Persist()
	return len(drop)
}

// IndexOf returns the position of the task with id, or -1.
func (s *Store) IndexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// IDAt maps a 0-based position to a task id.
func (s *Store) IDAt(i int) (string, bool) {
	if i < 0 || i >= len(s.tasks) {
		return "", false
	}
	return s.tasks[i].ID, true
}
