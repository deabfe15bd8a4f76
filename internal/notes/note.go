package notes

import (
	"time"

	"calnotes/internal/datekey"
)

// Note is a free-text note attached to a single day.
type Note struct {
	ID        string
	DateKey   datekey.Key
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotesByDate maps a day to its notes in insertion order. A key present in
// the map always has at least one note.
type NotesByDate map[datekey.Key][]Note

// Count returns the total number of notes.
func (n NotesByDate) Count() int {
	total := 0
	for _, list := range n {
		total += len(list)
	}
	return total
}

// clone copies the map; the note slices are shared and must not be mutated.
func (n NotesByDate) clone() NotesByDate {
	out := make(NotesByDate, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// State is the notes session state. Only NotesByDate is persisted.
type State struct {
	SelectedDateKey datekey.Key // empty when no day is selected
	NotesByDate     NotesByDate
	SelectedNoteID  string // empty when no note is selected
	PanelVisible    bool
}
