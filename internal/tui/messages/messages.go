package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"calnotes/internal/datekey"
)

// SelectDateMsg is sent by the month view when a day is chosen
type SelectDateMsg struct {
	Key datekey.Key
}

// JumpToNoteMsg requests showing a note's day with the note selected
type JumpToNoteMsg struct {
	NoteID string
	Key    datekey.Key
}

// PanelClosedMsg signals that the notes panel was dismissed
type PanelClosedMsg struct{}

// SearchClosedMsg signals that search was cancelled
type SearchClosedMsg struct{}

func SelectDate(key datekey.Key) tea.Cmd {
	return func() tea.Msg {
		return SelectDateMsg{Key: key}
	}
}

func Send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
