package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calnotes/internal/config"
	"calnotes/internal/kv"
	"calnotes/internal/notes"
)

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)

func newTestApp(t *testing.T) (AppModel, *notes.Store, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	s, p := notes.Open(store, time.Hour)
	t.Cleanup(p.Close)

	cfg := &config.Config{SaveDelay: 300 * time.Millisecond, StatusDuration: 3 * time.Second}
	m := NewAppModel(cfg, s, p, func() time.Time { return testNow })
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, s, store
}

func send(m AppModel, msg tea.Msg) AppModel {
	model, _ := m.Update(msg)
	return model.(AppModel)
}

// sendAndRun delivers msg and then the message its command produces, as the
// bubbletea runtime would. Batched and tick commands are not followed.
func sendAndRun(m AppModel, msg tea.Msg) AppModel {
	model, cmd := m.Update(msg)
	m = model.(AppModel)
	if cmd == nil {
		return m
	}
	switch next := cmd().(type) {
	case tea.BatchMsg, tea.QuitMsg:
		return m
	default:
		return send(m, next)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterOpensPanelForCursorDay(t *testing.T) {
	m, s, _ := newTestApp(t)

	m = sendAndRun(m, keyMsg("enter"))

	if m.Focus() != "notes" {
		t.Errorf("expected notes pane focused, got %s", m.Focus())
	}
	state := s.State()
	if !state.PanelVisible || state.SelectedDateKey != "2024-01-15" {
		t.Errorf("unexpected store state %+v", state)
	}
	if !strings.Contains(m.View(), "No notes for this date yet.") {
		t.Error("expected empty panel in view")
	}
}

func TestQuitFlushesPendingEdit(t *testing.T) {
	m, s, store := newTestApp(t)
	m = sendAndRun(m, keyMsg("enter"))
	m = send(m, keyMsg("ctrl+n"))
	for _, r := range "Buy milk" {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	model, cmd := m.Update(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
	_ = model

	saved := notes.Load(store)
	list := saved["2024-01-15"]
	if len(list) != 1 || list[0].Content != "Buy milk" {
		t.Errorf("expected edit persisted on quit, got %+v", list)
	}
	if got := s.NotesFor("2024-01-15"); got[0].Content != "Buy milk" {
		t.Errorf("expected store updated, got %q", got[0].Content)
	}
}

func TestMarkersFollowStoreChanges(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = sendAndRun(m, keyMsg("enter"))
	m = send(m, keyMsg("ctrl+n"))

	if !strings.Contains(m.View(), "15*") {
		t.Error("expected the 15th marked once it has a note")
	}
}

func TestSearchJumpsToNote(t *testing.T) {
	m, s, _ := newTestApp(t)
	n := s.CreateNote("2023-06-01")
	s.UpdateNote(n.ID, "Passport renewal")
	s.ClosePanel()

	m = send(m, keyMsg("/"))
	if m.Focus() != "search" {
		t.Fatalf("expected search focused, got %s", m.Focus())
	}
	for _, r := range "passport" {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = sendAndRun(m, keyMsg("enter"))

	if m.Focus() != "notes" {
		t.Errorf("expected notes focused after jump, got %s", m.Focus())
	}
	state := s.State()
	if state.SelectedDateKey != "2023-06-01" || state.SelectedNoteID != n.ID {
		t.Errorf("expected note selected, got %+v", state)
	}
	if m.monthView.Cursor() != "2023-06-01" {
		t.Errorf("expected calendar moved to the note's day, got %q", m.monthView.Cursor())
	}
}

func TestSearchEscReturnsToCalendar(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = send(m, keyMsg("/"))
	m = sendAndRun(m, keyMsg("esc"))
	if m.Focus() != "calendar" {
		t.Errorf("expected calendar focused, got %s", m.Focus())
	}
}

func TestPanelEscReturnsToCalendar(t *testing.T) {
	m, s, _ := newTestApp(t)
	m = sendAndRun(m, keyMsg("enter"))
	m = sendAndRun(m, keyMsg("esc"))

	if m.Focus() != "calendar" {
		t.Errorf("expected calendar focused, got %s", m.Focus())
	}
	if s.State().PanelVisible {
		t.Error("expected panel closed")
	}
}

func TestTabSwitchesPanes(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = send(m, keyMsg("tab"))
	if m.Focus() != "calendar" {
		t.Error("expected tab ignored while the panel is hidden")
	}

	m = sendAndRun(m, keyMsg("enter"))
	m = send(m, keyMsg("tab"))
	if m.Focus() != "calendar" {
		t.Errorf("expected calendar focused, got %s", m.Focus())
	}
	m = send(m, keyMsg("tab"))
	if m.Focus() != "notes" {
		t.Errorf("expected notes focused, got %s", m.Focus())
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = send(m, keyMsg("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help overlay")
	}
	m = send(m, keyMsg("x"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected any key to dismiss help")
	}
}
