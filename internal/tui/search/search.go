// Package search is the fuzzy finder over every note.
package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"calnotes/internal/notes"
	"calnotes/internal/tui/messages"
	"calnotes/internal/tui/theme"
)

const maxResults = 10

var (
	boxStyle      = theme.ModalBox
	titleStyle    = theme.ModalTitle
	dateStyle     = theme.DateLabel
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary)
	emptyStyle    = lipgloss.NewStyle().Foreground(theme.TextMuted).Italic(true)
	helpStyle     = theme.ModalHelp
)

// Model filters notes as the query is typed
type Model struct {
	textInput textinput.Model
	notes     []notes.Note
	filtered  []int
	selected  int
	width     int
}

// New creates a search over all notes, newest day first
func New(all []notes.Note) Model {
	ti := textinput.New()
	ti.Placeholder = "Search notes..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	ordered := make([]notes.Note, len(all))
	for i, n := range all {
		ordered[len(all)-1-i] = n
	}

	m := Model{
		textInput: ti,
		notes:     ordered,
	}
	m.applyFilter()
	return m
}

// SetWidth updates the overlay width
func (m *Model) SetWidth(width int) {
	m.width = width
	m.textInput.Width = max(20, min(60, width-10))
}

// Query returns the current search text
func (m Model) Query() string {
	return m.textInput.Value()
}

// Results returns the matching notes in rank order
func (m Model) Results() []notes.Note {
	out := make([]notes.Note, len(m.filtered))
	for i, idx := range m.filtered {
		out[i] = m.notes[idx]
	}
	return out
}

func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.textInput.Value())
	if query == "" {
		m.filtered = make([]int, len(m.notes))
		for i := range m.notes {
			m.filtered[i] = i
		}
	} else {
		names := make([]string, len(m.notes))
		for i, n := range m.notes {
			names[i] = notes.SearchString(n)
		}
		matches := fuzzy.Find(query, names)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.selected >= len(m.filtered) {
		m.selected = max(0, len(m.filtered)-1)
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles search events, returns (Model, tea.Cmd) as a child view
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return m, messages.Send(messages.SearchClosedMsg{})

	case "down", "ctrl+j":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
		return m, nil

	case "up", "ctrl+k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "enter":
		if m.selected < len(m.filtered) {
			n := m.notes[m.filtered[m.selected]]
			return m, messages.Send(messages.JumpToNoteMsg{NoteID: n.ID, Key: n.DateKey})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(keyMsg)
	m.applyFilter()
	return m, cmd
}

// View renders the search overlay
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Search notes"))
	sb.WriteString("\n\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(emptyStyle.Render("No matching notes"))
		sb.WriteString("\n")
	}

	start := 0
	if m.selected >= maxResults {
		start = m.selected - maxResults + 1
	}
	end := min(len(m.filtered), start+maxResults)
	for i := start; i < end; i++ {
		n := m.notes[m.filtered[i]]
		line := fmt.Sprintf("%s  %s", dateStyle.Render(string(n.DateKey)), notes.Preview(n.Content))
		if i == m.selected {
			line = selectedStyle.Render(fmt.Sprintf("%s  %s", n.DateKey, notes.Preview(n.Content)))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(m.filtered) > end {
		sb.WriteString(helpStyle.Render(fmt.Sprintf("… %d more", len(m.filtered)-end)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("type to filter  ↑/↓: move  enter: open  esc: cancel"))
	return boxStyle.Render(sb.String())
}
