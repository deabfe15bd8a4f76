package calendar

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"

	calpkg "calnotes/internal/calendar"
	"calnotes/internal/datekey"
	"calnotes/internal/notes"
	"calnotes/internal/tui/messages"
)

func newTestMonth(t *testing.T, now time.Time) MonthModel {
	t.Helper()
	nav := calpkg.NewNavigator(func() time.Time { return now })
	m := NewMonthModel(nav)
	m.SetSize(80, 24)
	return m
}

func press(m MonthModel, keys ...string) MonthModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

var jan15 = time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)

func TestNewMonthModel_StartsOnToday(t *testing.T) {
	m := newTestMonth(t, jan15)

	if got := m.State(); got != (calpkg.State{Year: 2024, Month: 0}) {
		t.Errorf("expected January 2024, got %+v", got)
	}
	if m.Cursor() != "2024-01-15" {
		t.Errorf("expected cursor on today, got %q", m.Cursor())
	}
}

func TestCursorMovement(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantKey   datekey.Key
		wantState calpkg.State
	}{
		{"next day", []string{"l"}, "2024-01-16", calpkg.State{Year: 2024, Month: 0}},
		{"previous week", []string{"k"}, "2024-01-08", calpkg.State{Year: 2024, Month: 0}},
		{"week into next month", []string{"j", "j", "j"}, "2024-02-05", calpkg.State{Year: 2024, Month: 1}},
		{"week into previous year", []string{"k", "k", "k"}, "2023-12-25", calpkg.State{Year: 2023, Month: 11}},
		{"previous month keeps day", []string{"left"}, "2023-12-15", calpkg.State{Year: 2023, Month: 11}},
		{"next month keeps day", []string{"L"}, "2024-02-15", calpkg.State{Year: 2024, Month: 1}},
		{"next year", []string{"]"}, "2025-01-15", calpkg.State{Year: 2025, Month: 0}},
		{"previous year", []string{"["}, "2023-01-15", calpkg.State{Year: 2023, Month: 0}},
		{"today", []string{"L", "L", "t"}, "2024-01-15", calpkg.State{Year: 2024, Month: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestMonth(t, jan15), tt.keys...)
			if m.Cursor() != tt.wantKey {
				t.Errorf("expected cursor %q, got %q", tt.wantKey, m.Cursor())
			}
			if m.State() != tt.wantState {
				t.Errorf("expected state %+v, got %+v", tt.wantState, m.State())
			}
		})
	}
}

func TestMonthChangeClampsDay(t *testing.T) {
	m := newTestMonth(t, time.Date(2024, 1, 31, 9, 0, 0, 0, time.Local))
	m = press(m, "right")
	if m.Cursor() != "2024-02-29" {
		t.Errorf("expected cursor clamped to Feb 29, got %q", m.Cursor())
	}
}

func TestMonthPicker(t *testing.T) {
	m := press(newTestMonth(t, jan15), "m")
	if !m.IsPicking() {
		t.Fatal("expected picker open")
	}
	m = press(m, "j", "j", "enter")
	if m.IsPicking() {
		t.Error("expected picker closed")
	}
	if m.State() != (calpkg.State{Year: 2024, Month: 2}) {
		t.Errorf("expected March 2024, got %+v", m.State())
	}

	m = press(m, "m", "j", "esc")
	if m.State().Month != 2 {
		t.Error("expected cancel to keep the month")
	}
}

func TestYearPicker(t *testing.T) {
	m := press(newTestMonth(t, jan15), "y", "k", "k", "enter")
	if m.State() != (calpkg.State{Year: 2022, Month: 0}) {
		t.Errorf("expected January 2022, got %+v", m.State())
	}
	if m.Cursor() != "2022-01-15" {
		t.Errorf("expected cursor to follow, got %q", m.Cursor())
	}
}

func TestEnterSelectsCursorDay(t *testing.T) {
	m := press(newTestMonth(t, jan15), "l")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(messages.SelectDateMsg)
	if !ok || msg.Key != "2024-01-16" {
		t.Errorf("expected SelectDateMsg for 2024-01-16, got %#v", cmd())
	}
}

func TestJumpTo(t *testing.T) {
	m := newTestMonth(t, jan15)
	m.JumpTo("2030-07-04")
	if m.State() != (calpkg.State{Year: 2030, Month: 6}) || m.Cursor() != "2030-07-04" {
		t.Errorf("unexpected state after jump: %+v %q", m.State(), m.Cursor())
	}

	m.JumpTo("garbage")
	if m.Cursor() != "2030-07-04" {
		t.Error("expected invalid key ignored")
	}
}

func TestView(t *testing.T) {
	m := newTestMonth(t, jan15)
	m.SetNotes(notes.NotesByDate{"2024-01-20": {{ID: "a", DateKey: "2024-01-20"}}})

	view := m.View()
	if !strings.Contains(view, "January 2024") {
		t.Errorf("expected month title, got:\n%s", view)
	}
	if strings.Index(view, "Mon") > strings.Index(view, "Sun") {
		t.Error("expected weeks to start on Monday")
	}
	if !strings.Contains(view, "20*") {
		t.Errorf("expected note marker on the 20th, got:\n%s", view)
	}
}

func TestCursorCrossesMidnightDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })

	m := newTestMonth(t, time.Date(2018, 11, 3, 12, 0, 0, 0, loc))
	m = press(m, "l")
	if m.Cursor() != "2018-11-04" {
		t.Fatalf("expected cursor on 2018-11-04, got %q", m.Cursor())
	}
	m = press(m, "l")
	if m.Cursor() != "2018-11-05" {
		t.Errorf("expected cursor to move past the gap day, got %q", m.Cursor())
	}
	m = press(m, "h", "h")
	if m.Cursor() != "2018-11-03" {
		t.Errorf("expected cursor back on 2018-11-03, got %q", m.Cursor())
	}
}
