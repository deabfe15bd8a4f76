package notes

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"calnotes/internal/datekey"
	"calnotes/internal/debounce"
	"calnotes/internal/kv"
	"calnotes/internal/logs"
)

const (
	// StorageKey is the durable slot holding all notes.
	StorageKey = "aiFrontend.notes.v1"

	// DefaultSaveDelay is the quiet period after the last change before notes are written.
	DefaultSaveDelay = 300 * time.Millisecond

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type storedNote struct {
	ID        string `json:"id"`
	DateKey   string `json:"dateKey"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type storedData struct {
	NotesByDate map[string][]storedNote `json:"notesByDate"`
}

// Encode serializes notes into the stored JSON document.
func Encode(nb NotesByDate) ([]byte, error) {
	data := storedData{NotesByDate: make(map[string][]storedNote, len(nb))}
	for key, list := range nb {
		if len(list) == 0 {
			continue
		}
		stored := make([]storedNote, len(list))
		for i, n := range list {
			stored[i] = storedNote{
				ID:        n.ID,
				DateKey:   string(n.DateKey),
				Content:   n.Content,
				CreatedAt: formatTimestamp(n.CreatedAt),
				UpdatedAt: formatTimestamp(n.UpdatedAt),
			}
		}
		data.NotesByDate[string(key)] = stored
	}
	return json.Marshal(data)
}

// Decode parses a stored document, keeping whatever is valid. Malformed
// entries are dropped one by one; a day with no valid notes is dropped
// entirely. Decode never fails: unusable input yields an empty mapping.
func Decode(raw []byte) NotesByDate {
	out := make(NotesByDate)

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		logs.Logger.Printf("notes: discarding unreadable stored notes: %v", err)
		return out
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		logs.Logger.Printf("notes: invalid notes data structure in storage")
		return out
	}
	byDate, ok := obj["notesByDate"].(map[string]any)
	if !ok {
		logs.Logger.Printf("notes: invalid notes data structure in storage")
		return out
	}

	dropped := 0
	for key, entry := range byDate {
		items, ok := entry.([]any)
		if !ok {
			dropped++
			continue
		}
		var valid []Note
		for _, item := range items {
			n, ok := decodeNote(item)
			if !ok {
				dropped++
				continue
			}
			valid = append(valid, n)
		}
		if len(valid) > 0 {
			out[datekey.Key(key)] = valid
		}
	}
	if dropped > 0 {
		logs.Logger.Printf("notes: dropped %d invalid entries while loading", dropped)
	}
	return out
}

func decodeNote(item any) (Note, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return Note{}, false
	}
	fields := [5]string{"id", "dateKey", "content", "createdAt", "updatedAt"}
	var vals [5]string
	for i, f := range fields {
		s, ok := m[f].(string)
		if !ok {
			return Note{}, false
		}
		vals[i] = s
	}

	created, createdErr := parseTimestamp(vals[3])
	updated, updatedErr := parseTimestamp(vals[4])
	switch {
	case createdErr != nil && updatedErr == nil:
		created = updated
	case updatedErr != nil && createdErr == nil:
		updated = created
	}

	return Note{
		ID:        vals[0],
		DateKey:   datekey.Key(vals[1]),
		Content:   vals[2],
		CreatedAt: created,
		UpdatedAt: updated,
	}, true
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// Load reads notes from store. Missing, unreadable or corrupt data yields an
// empty mapping; Load never fails.
func Load(store kv.Store) NotesByDate {
	raw, ok, err := store.Get(StorageKey)
	if err != nil {
		logs.Logger.Printf("notes: failed to load notes from storage: %v", err)
		return make(NotesByDate)
	}
	if !ok || raw == "" {
		return make(NotesByDate)
	}
	return Decode([]byte(raw))
}

// Save writes notes to store.
func Save(store kv.Store, nb NotesByDate) error {
	data, err := Encode(nb)
	if err != nil {
		return err
	}
	return store.Set(StorageKey, string(data))
}

// Persister writes a Store's notes to durable storage once changes settle.
type Persister struct {
	kv        kv.Store
	debouncer *debounce.Debouncer

	mu      sync.Mutex
	store   *Store
	lastErr error
}

// NewPersister creates a Persister writing to store after delay of quiet.
func NewPersister(store kv.Store, delay time.Duration) *Persister {
	return &Persister{
		kv:        store,
		debouncer: debounce.New(delay),
	}
}

// Open loads notes from kvStore and returns a Store whose changes are
// persisted back after delay.
func Open(kvStore kv.Store, delay time.Duration, opts ...Option) (*Store, *Persister) {
	store := NewStore(Load(kvStore), opts...)
	p := NewPersister(kvStore, delay)
	p.Attach(store)
	return store, p
}

// Attach starts persisting changes made to store.
func (p *Persister) Attach(store *Store) {
	p.mu.Lock()
	p.store = store
	p.mu.Unlock()

	store.OnChange(func() {
		p.debouncer.Trigger(p.saveLatest)
	})
}

// saveLatest writes the store's current notes, not the ones at trigger time.
func (p *Persister) saveLatest() {
	p.mu.Lock()
	store := p.store
	p.mu.Unlock()
	if store == nil {
		return
	}

	err := Save(p.kv, store.NotesByDate())
	if err != nil {
		logs.Logger.Printf("notes: failed to save notes to storage: %v", err)
	}

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}

// Pending reports whether a save is scheduled.
func (p *Persister) Pending() bool {
	return p.debouncer.Pending()
}

// Flush writes any pending change immediately.
func (p *Persister) Flush() {
	p.debouncer.Flush()
}

// LastError returns the error of the most recent save, if it failed.
func (p *Persister) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Close flushes pending changes and stops the persister.
func (p *Persister) Close() {
	p.Flush()
	p.debouncer.Stop()
}
