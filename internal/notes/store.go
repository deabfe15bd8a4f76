// Package notes owns day notes: the in-memory store, its display helpers,
// and persistence to a durable key-value slot.
package notes

import (
	"errors"
	"sort"
	"sync"
	"time"

	"calnotes/internal/datekey"
)

// ErrNoteNotFound is returned when an action references an unknown note id.
var ErrNoteNotFound = errors.New("note not found")

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the source of new note ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store is the single writer of NotesByDate. Every mutation builds a new
// map rather than editing the current one, so a State returned to a caller
// never changes underneath it.
type Store struct {
	mu       sync.Mutex
	state    State
	version  uint64
	now      func() time.Time
	newID    func() string
	onChange []func()
}

// NewStore creates a store seeded with initial notes (which may be nil).
func NewStore(initial NotesByDate, opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.NotesByDate = sanitize(initial)
	return s
}

// OnChange registers fn to run after every change to NotesByDate.
// Selection changes do not trigger it.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// State returns the current state. The map inside must be treated as read-only.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NotesByDate returns the current notes mapping (read-only).
func (s *Store) NotesByDate() NotesByDate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NotesByDate
}

// Version increases with every change to NotesByDate.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// NotesFor returns the notes of a day in insertion order.
func (s *Store) NotesFor(key datekey.Key) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NotesByDate[key]
}

// SortedNotes returns the notes of a day, most recently updated first.
func (s *Store) SortedNotes(key datekey.Key) []Note {
	return SortNotes(s.NotesFor(key))
}

// Note looks a note up by id across all days.
func (s *Store) Note(id string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, idx, key := find(s.state.NotesByDate, id)
	if idx < 0 {
		return Note{}, false
	}
	return s.state.NotesByDate[key][idx], true
}

// SelectedNote returns the selected note, if any.
func (s *Store) SelectedNote() (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedNoteID == "" {
		return Note{}, false
	}
	for _, n := range s.state.NotesByDate[s.state.SelectedDateKey] {
		if n.ID == s.state.SelectedNoteID {
			return n, true
		}
	}
	return Note{}, false
}

// All returns every note ordered by day, then insertion order.
func (s *Store) All() []Note {
	nb := s.NotesByDate()
	var all []Note
	for _, key := range Dates(nb) {
		all = append(all, nb[key]...)
	}
	return all
}

// Dates returns the days that have notes, in ascending order.
func Dates(nb NotesByDate) []datekey.Key {
	keys := make([]datekey.Key, 0, len(nb))
	for k := range nb {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CreateNote appends an empty note to the day and selects it.
func (s *Store) CreateNote(key datekey.Key) Note {
	s.mu.Lock()
	now := s.timestamp()
	note := Note{
		ID:        s.newID(),
		DateKey:   key,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := s.state.NotesByDate.clone()
	list := make([]Note, 0, len(next[key])+1)
	list = append(list, next[key]...)
	next[key] = append(list, note)

	s.state.NotesByDate = next
	s.state.SelectedDateKey = key
	s.state.SelectedNoteID = note.ID
	hooks := s.changedLocked()
	s.mu.Unlock()

	runHooks(hooks)
	return note
}

// UpdateNote replaces the content of the note with the given id, wherever
// it lives, and refreshes its UpdatedAt.
func (s *Store) UpdateNote(id, content string) (Note, error) {
	s.mu.Lock()
	list, idx, key := find(s.state.NotesByDate, id)
	if idx < 0 {
		s.mu.Unlock()
		return Note{}, ErrNoteNotFound
	}

	updated := list[idx]
	updated.Content = content
	updated.UpdatedAt = s.timestamp()
	if !updated.UpdatedAt.After(list[idx].UpdatedAt) {
		updated.UpdatedAt = list[idx].UpdatedAt.Add(time.Millisecond)
	}

	newList := make([]Note, len(list))
	copy(newList, list)
	newList[idx] = updated

	next := s.state.NotesByDate.clone()
	next[key] = newList
	s.state.NotesByDate = next
	hooks := s.changedLocked()
	s.mu.Unlock()

	runHooks(hooks)
	return updated, nil
}

// DeleteNote removes a note. A day left without notes is removed from the
// map, and the selection is cleared if it pointed at the deleted note.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	list, idx, key := find(s.state.NotesByDate, id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNoteNotFound
	}

	next := s.state.NotesByDate.clone()
	if len(list) == 1 {
		delete(next, key)
	} else {
		newList := make([]Note, 0, len(list)-1)
		newList = append(newList, list[:idx]...)
		newList = append(newList, list[idx+1:]...)
		next[key] = newList
	}

	s.state.NotesByDate = next
	if s.state.SelectedNoteID == id {
		s.state.SelectedNoteID = ""
	}
	hooks := s.changedLocked()
	s.mu.Unlock()

	runHooks(hooks)
	return nil
}

// SelectNote selects a note by id, or clears the selection for "".
// Selecting a note on another day moves the day selection with it.
// An unknown id clears the selection and returns ErrNoteNotFound.
func (s *Store) SelectNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.state.SelectedNoteID = ""
		return nil
	}
	_, idx, key := find(s.state.NotesByDate, id)
	if idx < 0 {
		s.state.SelectedNoteID = ""
		return ErrNoteNotFound
	}
	s.state.SelectedDateKey = key
	s.state.SelectedNoteID = id
	return nil
}

// SelectDate selects a day, shows the panel and clears the note selection.
func (s *Store) SelectDate(key datekey.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedDateKey = key
	s.state.PanelVisible = true
	s.state.SelectedNoteID = ""
}

// ClosePanel hides the panel and clears the note selection.
func (s *Store) ClosePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PanelVisible = false
	s.state.SelectedNoteID = ""
}

// Import adds notes that keep their own ids and timestamps. Notes whose id
// already exists are skipped. It returns the number added.
func (s *Store) Import(incoming []Note) int {
	s.mu.Lock()
	next := s.state.NotesByDate.clone()
	added := 0
	for _, n := range incoming {
		if n.ID == "" || n.DateKey == "" {
			continue
		}
		if _, idx, _ := find(next, n.ID); idx >= 0 {
			continue
		}
		list := make([]Note, 0, len(next[n.DateKey])+1)
		list = append(list, next[n.DateKey]...)
		next[n.DateKey] = append(list, n)
		added++
	}
	if added == 0 {
		s.mu.Unlock()
		return 0
	}
	s.state.NotesByDate = next
	hooks := s.changedLocked()
	s.mu.Unlock()

	runHooks(hooks)
	return added
}

// timestamp reads the clock at millisecond precision, matching the stored format.
func (s *Store) timestamp() time.Time {
	return s.now().Truncate(time.Millisecond)
}

// changedLocked bumps the version and returns the hooks to run once the lock is released.
func (s *Store) changedLocked() []func() {
	s.version++
	hooks := make([]func(), len(s.onChange))
	copy(hooks, s.onChange)
	return hooks
}

func runHooks(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
}

// find locates id across all days.
func find(nb NotesByDate, id string) ([]Note, int, datekey.Key) {
	for key, list := range nb {
		for i, n := range list {
			if n.ID == id {
				return list, i, key
			}
		}
	}
	return nil, -1, ""
}

// sanitize drops empty day entries so the map invariant holds from the start.
func sanitize(nb NotesByDate) NotesByDate {
	out := make(NotesByDate, len(nb))
	for k, list := range nb {
		if len(list) > 0 {
			out[k] = list
		}
	}
	return out
}
