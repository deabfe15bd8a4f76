// Package panel is the notes panel shown beside the calendar: the list of a
// day's notes, an editor whose changes are committed once typing pauses, and
// a confirmation step before deletion.
package panel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calnotes/internal/datekey"
	"calnotes/internal/logs"
	"calnotes/internal/notes"
	"calnotes/internal/tui/messages"
)

const emptyStateText = "No notes for this date yet."

type focusArea int

const (
	focusList focusArea = iota
	focusEditor
)

// commitMsg fires once the editor has been quiet for the save delay.
type commitMsg struct {
	gen int
}

// clearStatusMsg hides the save status unless a newer save replaced it.
type clearStatusMsg struct {
	gen int
}

// Model is the notes panel for the store's selected day.
type Model struct {
	store  *notes.Store
	editor textarea.Model
	items  []notes.Note // selected day's notes, newest first
	cursor int
	focus  focusArea

	editingID string
	editGen   int
	dirty     bool

	status    string
	statusGen int

	saveDelay      time.Duration
	statusDuration time.Duration

	confirm  *ConfirmationModal
	deleteID string

	width  int
	height int
}

// New creates a panel over store. Edits are committed after saveDelay of
// inactivity and the "Saved at" status is shown for statusDuration.
func New(store *notes.Store, saveDelay, statusDuration time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""

	m := Model{
		store:          store,
		editor:         ta,
		saveDelay:      saveDelay,
		statusDuration: statusDuration,
	}
	m.refresh()
	return m
}

// SetSize updates the panel dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetWidth(max(10, width-4))
	m.editor.SetHeight(max(3, height/2))
}

// Visible reports whether the store has the panel open.
func (m Model) Visible() bool {
	return m.store.State().PanelVisible
}

// EditorFocused reports whether keystrokes go to the note editor.
func (m Model) EditorFocused() bool {
	return m.focus == focusEditor
}

// Confirming reports whether the delete confirmation is showing.
func (m Model) Confirming() bool {
	return m.confirm != nil
}

// Status returns the current save status line.
func (m Model) Status() string {
	return m.status
}

// SelectDate shows the notes of key, committing any unsaved edit first.
func (m *Model) SelectDate(key datekey.Key) tea.Cmd {
	cmd := m.CommitPending()
	m.stopEditing()
	m.store.SelectDate(key)
	m.cursor = 0
	m.refresh()
	return cmd
}

// FocusNote selects a note and opens it in the editor.
func (m *Model) FocusNote(id string) tea.Cmd {
	cmd := m.CommitPending()
	m.stopEditing()
	if err := m.store.SelectNote(id); err != nil {
		logs.Logger.Printf("panel: focus note %s: %v", id, err)
		m.refresh()
		return cmd
	}
	m.refresh()
	n, ok := m.store.SelectedNote()
	if !ok {
		return cmd
	}
	return tea.Batch(cmd, m.startEditing(n))
}

// Close commits any unsaved edit and hides the panel.
func (m *Model) Close() tea.Cmd {
	cmd := m.CommitPending()
	m.stopEditing()
	m.confirm = nil
	m.deleteID = ""
	m.store.ClosePanel()
	m.items = nil
	m.cursor = 0
	return cmd
}

// CommitPending saves the editor content now if it has unsaved changes.
// A commit tick already in flight becomes stale.
func (m *Model) CommitPending() tea.Cmd {
	m.editGen++
	return m.commit()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles panel events, returns (Model, tea.Cmd) as a child view
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commitMsg:
		if msg.gen != m.editGen {
			return m, nil
		}
		return m, m.commit()

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil

	case ConfirmationResultMsg:
		return m.handleConfirmation(msg)

	case tea.KeyMsg:
		if m.confirm != nil {
			return m, m.confirm.Update(msg)
		}
		if m.focus == focusEditor {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)
	}

	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.selectCursor()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.selectCursor()
		}
	case "enter", "e":
		if n, ok := m.current(); ok {
			return m, m.startEditing(n)
		}
	case "ctrl+n", "n":
		return m, m.createNote()
	case "ctrl+d", "d":
		if n, ok := m.current(); ok {
			m.openConfirm(n)
		}
	case "esc":
		closed := messages.Send(messages.PanelClosedMsg{})
		if cmd := m.Close(); cmd != nil {
			return m, tea.Batch(cmd, closed)
		}
		return m, closed
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		cmd := m.CommitPending()
		m.stopEditing()
		return m, cmd
	case "ctrl+n":
		return m, m.createNote()
	case "ctrl+d":
		if n, ok := m.store.Note(m.editingID); ok {
			m.openConfirm(n)
		}
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() == before {
		return m, cmd
	}

	m.dirty = true
	m.editGen++
	gen := m.editGen
	tick := tea.Tick(m.saveDelay, func(time.Time) tea.Msg {
		return commitMsg{gen: gen}
	})
	return m, tea.Batch(cmd, tick)
}

// commit writes the editor content to the store when it differs from the
// stored note.
func (m *Model) commit() tea.Cmd {
	if m.editingID == "" || !m.dirty {
		return nil
	}
	m.dirty = false

	content := m.editor.Value()
	current, ok := m.store.Note(m.editingID)
	if !ok || current.Content == content {
		return nil
	}
	updated, err := m.store.UpdateNote(m.editingID, content)
	if err != nil {
		logs.Logger.Printf("panel: save note %s: %v", m.editingID, err)
		return nil
	}
	m.refresh()
	return m.setStatus("Saved at " + datekey.FormatTime(updated.UpdatedAt))
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusGen++
	gen := m.statusGen
	return tea.Tick(m.statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}

func (m *Model) createNote() tea.Cmd {
	key := m.store.State().SelectedDateKey
	if key == "" {
		return nil
	}
	cmd := m.CommitPending()
	m.stopEditing()
	n := m.store.CreateNote(key)
	m.refresh()
	return tea.Batch(cmd, m.startEditing(n))
}

func (m *Model) startEditing(n notes.Note) tea.Cmd {
	if err := m.store.SelectNote(n.ID); err != nil {
		return nil
	}
	m.editingID = n.ID
	m.dirty = false
	m.editor.SetValue(n.Content)
	m.focus = focusEditor
	m.syncCursor()
	return m.editor.Focus()
}

func (m *Model) stopEditing() {
	m.editingID = ""
	m.dirty = false
	m.editor.Blur()
	m.focus = focusList
}

func (m *Model) openConfirm(n notes.Note) {
	m.deleteID = n.ID
	width := 50
	if m.width > 0 && m.width-4 < width {
		width = max(20, m.width-4)
	}
	m.confirm = NewConfirmationModal("Delete this note?", notes.Preview(n.Content), width)
}

func (m Model) handleConfirmation(msg ConfirmationResultMsg) (Model, tea.Cmd) {
	id := m.deleteID
	m.confirm = nil
	m.deleteID = ""
	if !msg.Confirmed || id == "" {
		return m, nil
	}

	if id == m.editingID {
		m.editGen++
		m.stopEditing()
	}
	if err := m.store.DeleteNote(id); err != nil {
		logs.Logger.Printf("panel: delete note %s: %v", id, err)
	}
	m.refresh()
	return m, nil
}

func (m Model) current() (notes.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return notes.Note{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) selectCursor() {
	n, ok := m.current()
	if !ok {
		return
	}
	if err := m.store.SelectNote(n.ID); err != nil {
		logs.Logger.Printf("panel: select note %s: %v", n.ID, err)
		m.refresh()
	}
}

// refresh reloads the selected day's notes from the store.
func (m *Model) refresh() {
	st := m.store.State()
	if st.SelectedDateKey == "" {
		m.items = nil
		m.cursor = 0
		return
	}
	m.items = notes.SortNotes(st.NotesByDate[st.SelectedDateKey])
	m.syncCursor()
}

// syncCursor moves the cursor onto the selected note and keeps it in range.
func (m *Model) syncCursor() {
	if id := m.store.State().SelectedNoteID; id != "" {
		for i, n := range m.items {
			if n.ID == id {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

// HintText returns the key hints for the current panel mode.
func (m Model) HintText() string {
	switch {
	case m.confirm != nil:
		return "y:delete  n/esc:cancel"
	case m.focus == focusEditor:
		return "esc:done  ctrl+n:new note  ctrl+d:delete"
	default:
		return "j/k:navigate  enter:edit  n:new note  d:delete  esc:close"
	}
}

// View renders the panel
func (m Model) View() string {
	st := m.store.State()
	if !st.PanelVisible || st.SelectedDateKey == "" {
		return ""
	}

	var sb strings.Builder

	header := headerStyle.Render(datekey.FormatDay(st.SelectedDateKey))
	if len(m.items) > 0 {
		header += " " + countStyle.Render(fmt.Sprintf("(%d)", len(m.items)))
	}
	if m.status != "" {
		header += "  " + statusStyle.Render(m.status)
	}
	sb.WriteString(header)
	sb.WriteString("\n\n")

	if m.confirm != nil {
		sb.WriteString(m.confirm.View())
		sb.WriteString("\n")
		return sb.String()
	}

	if m.focus == focusEditor {
		sb.WriteString(editorBoxStyle.Render(m.editor.View()))
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render(m.HintText()))
		return sb.String()
	}

	if len(m.items) == 0 {
		sb.WriteString(emptyStyle.Render(emptyStateText))
		sb.WriteString("\n\n")
		sb.WriteString(hintStyle.Render(m.HintText()))
		return sb.String()
	}

	for i, n := range m.items {
		sb.WriteString(m.renderItem(n, i == m.cursor))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render(m.HintText()))
	return sb.String()
}

func (m Model) renderItem(n notes.Note, selected bool) string {
	preview := notes.Preview(n.Content)
	updated := updatedStyle.Render("Updated " + datekey.FormatDateTime(n.UpdatedAt))

	if selected {
		line := cursorStyle.Render("> ") + selectedStyle.Render(preview)
		return lipgloss.JoinVertical(lipgloss.Left, line, "  "+updated)
	}
	line := "  " + previewStyle.Render(preview)
	return lipgloss.JoinVertical(lipgloss.Left, line, "  "+updated)
}
