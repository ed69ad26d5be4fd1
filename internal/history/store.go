// Package history implements the JSON-backed clipboard history store,
// the search filter, and the reveal-window view model.
//
// The backing file is owned by the external clipse daemon; this package
// reads it, applies pin/delete edits in memory, and writes the whole
// document back atomically after a debounce delay. Concurrent rewrites by
// the daemon are accepted as last-writer-wins.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	// DefaultSaveDebounce coalesces rapid pin/delete bursts into one write.
	DefaultSaveDebounce = 300 * time.Millisecond

	historyKey = "clipboardHistory"
)

// Options configures a Store.
type Options struct {
	// SaveDebounce is the quiet period before edits are persisted.
	// Zero means DefaultSaveDebounce.
	SaveDebounce time.Duration

	// ProtectPinned blocks deletion of pinned entries.
	ProtectPinned bool
}

// Store owns the in-memory history collection and is the only writer of the
// backing file from this process. All exported methods are safe for
// concurrent use; the debounce timer fires on its own goroutine.
type Store struct {
	path          string
	debounce      time.Duration
	protectPinned bool

	mu       sync.Mutex
	items    []*Entry
	index    map[string]*Entry
	docExtra map[string]json.RawMessage
	timer    *time.Timer
	dirty    bool
	saveErr  error
	writes   int
}

// NewStore creates a store for the history file at path. The file is not
// read until Load is called.
func NewStore(path string, opts Options) *Store {
	debounce := opts.SaveDebounce
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}
	return &Store{
		path:          path,
		debounce:      debounce,
		protectPinned: opts.ProtectPinned,
		index:         make(map[string]*Entry),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the backing file, replacing the in-memory
// collection. A missing file yields an empty collection, not an error. On a
// read or parse failure the previous collection is kept and the error is
// returned, so the caller keeps stale-but-consistent data.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.items = nil
			s.index = make(map[string]*Entry)
			s.docExtra = nil
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("read history file: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse history file: %w", err)
	}

	var loaded []*Entry
	if raw, ok := doc[historyKey]; ok {
		if err := json.Unmarshal(raw, &loaded); err != nil {
			return fmt.Errorf("parse history file: %w", err)
		}
	}
	delete(doc, historyKey)

	// Newest first. The raw recorded strings sort chronologically in every
	// format the daemon writes, so no parsing is needed here.
	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].Recorded > loaded[j].Recorded
	})

	index := make(map[string]*Entry, len(loaded))
	items := loaded[:0]
	for _, e := range loaded {
		if _, dup := index[e.ID]; dup {
			continue
		}
		index[e.ID] = e
		items = append(items, e)
	}

	s.mu.Lock()
	s.items = items
	s.index = index
	s.docExtra = doc
	s.mu.Unlock()
	return nil
}

// Reload re-reads the backing file. The caller invokes this after an
// external change signal (mtime poll); the store does not watch the file.
func (s *Store) Reload() error {
	return s.Load()
}

// Items returns a snapshot of the collection, newest first.
func (s *Store) Items() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Entry, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of entries currently in memory.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get looks up an entry by ID.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.index[id]
	return e, ok
}

// SetPinned toggles the pin flag for the entry with the given ID and
// schedules a debounced persist. An unknown ID returns ErrNotFound and
// changes nothing. Any failure from a previous background persist is
// reported here, joined with this call's own result.
func (s *Store) SetPinned(id string, pinned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.takeSaveErrLocked()

	e, ok := s.index[id]
	if !ok {
		return joinErr(pending, ErrNotFound)
	}
	e.Pinned = pinned
	s.schedulePersistLocked()
	return pending
}

// Delete removes the entry with the given ID and schedules a debounced
// persist. Pinned entries are refused with ErrProtectedItem when pin
// protection is enabled. An unknown ID returns ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.takeSaveErrLocked()

	e, ok := s.index[id]
	if !ok {
		return joinErr(pending, ErrNotFound)
	}
	if s.protectPinned && e.Pinned {
		return joinErr(pending, ErrProtectedItem)
	}

	delete(s.index, id)
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.schedulePersistLocked()
	return pending
}

// FlushNow cancels any pending debounce timer and persists immediately.
// Called unconditionally on shutdown so no edit is lost to an unfired timer.
func (s *Store) FlushNow() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.takeSaveErrLocked()
	dirty := s.dirty
	s.mu.Unlock()
	if !dirty {
		return pending
	}
	return joinErr(pending, s.persist())
}

// Close flushes pending edits. It satisfies the usual io.Closer shape so
// callers can defer it.
func (s *Store) Close() error {
	return s.FlushNow()
}

// schedulePersistLocked arms (or re-arms) the debounce timer. A mutation
// arriving before the timer fires resets it, so a burst of edits produces
// exactly one write.
func (s *Store) schedulePersistLocked() {
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		s.timer = nil
		s.mu.Unlock()
		if err := s.persist(); err != nil {
			s.mu.Lock()
			s.saveErr = err
			s.mu.Unlock()
		}
	})
}

// persist writes the full document to a temporary file and renames it over
// the real one, so a concurrent reader (the daemon included) never sees a
// truncated file. In-memory state is the source of truth; a failed write is
// reported but never rolls edits back.
func (s *Store) persist() error {
	s.mu.Lock()
	doc := make(map[string]json.RawMessage, len(s.docExtra)+1)
	for key, raw := range s.docExtra {
		doc[key] = raw
	}
	entries, err := json.Marshal(s.items)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encode history: %w", err)
	}
	doc[historyKey] = entries
	s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp history file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace history file: %w", err)
	}

	s.mu.Lock()
	s.writes++
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// takeSaveErrLocked consumes the last background persist failure, if any.
func (s *Store) takeSaveErrLocked() error {
	err := s.saveErr
	s.saveErr = nil
	return err
}

// joinErr keeps single-error results unwrapped so errors.Is still works the
// obvious way at call sites.
func joinErr(a, b error) error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return fmt.Errorf("%w (previous save failed: %w)", b, a)
	}
}
