// Package calendar is the month view: a Monday-first grid with a day cursor
// and markers on days that have notes.
package calendar

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	calpkg "calnotes/internal/calendar"
	"calnotes/internal/datekey"
	"calnotes/internal/notes"
	"calnotes/internal/tui/messages"
)

// MonthModel is the month view with calendar grid
type MonthModel struct {
	nav    *calpkg.Navigator
	matrix calpkg.Matrix
	cursor time.Time // the day under cursor, always inside the displayed month
	counts map[datekey.Key]int
	picker *picker
	width  int
	height int
}

// NewMonthModel creates a month view starting on today's month
func NewMonthModel(nav *calpkg.Navigator) MonthModel {
	m := MonthModel{
		nav:    nav,
		cursor: nav.Today(),
		counts: make(map[datekey.Key]int),
	}
	m.nav.GoToday()
	m.refresh()
	return m
}

// SetSize updates the view dimensions
func (m *MonthModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetNotes updates the per-day note markers
func (m *MonthModel) SetNotes(nb notes.NotesByDate) {
	m.counts = make(map[datekey.Key]int, len(nb))
	for key, list := range nb {
		m.counts[key] = len(list)
	}
}

// State returns the displayed month
func (m MonthModel) State() calpkg.State {
	return m.nav.State()
}

// Cursor returns the key of the day under the cursor
func (m MonthModel) Cursor() datekey.Key {
	return datekey.FromTime(m.cursor)
}

// IsPicking reports whether the month or year picker is open
func (m MonthModel) IsPicking() bool {
	return m.picker != nil
}

// JumpTo shows the month containing key with the cursor on it
func (m *MonthModel) JumpTo(key datekey.Key) {
	t, err := key.Time()
	if err != nil {
		return
	}
	m.cursor = t
	m.nav.SetYear(t.Year())
	m.nav.SetMonth(int(t.Month()) - 1)
	m.refresh()
}

func (m *MonthModel) refresh() {
	m.matrix = m.nav.Matrix()
}

// Update handles key events for the month view
func (m MonthModel) Update(msg tea.Msg) (MonthModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.picker != nil {
		return m.updatePicker(keyMsg)
	}

	state := m.nav.State()
	switch keyMsg.String() {
	case "h":
		m.moveCursor(-1)
	case "l":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-7)
	case "j", "down":
		m.moveCursor(7)
	case "left", "H":
		m.nav.PrevMonth()
		m.cursorIntoMonth()
	case "right", "L":
		m.nav.NextMonth()
		m.cursorIntoMonth()
	case "[":
		m.nav.SetYear(state.Year - 1)
		m.cursorIntoMonth()
	case "]":
		m.nav.SetYear(state.Year + 1)
		m.cursorIntoMonth()
	case "t":
		m.nav.GoToday()
		m.cursor = m.nav.Today()
		m.refresh()
	case "m":
		m.picker = newMonthPicker(state.Month)
	case "y":
		m.picker = newYearPicker(state.Year)
	case "enter":
		return m, messages.SelectDate(m.Cursor())
	}
	return m, nil
}

func (m MonthModel) updatePicker(msg tea.KeyMsg) (MonthModel, tea.Cmd) {
	done, apply := m.picker.update(msg)
	if !done {
		return m, nil
	}
	if apply {
		switch m.picker.kind {
		case pickMonth:
			m.nav.SetMonth(m.picker.value())
		case pickYear:
			m.nav.SetYear(m.picker.value())
		}
		m.cursorIntoMonth()
	}
	m.picker = nil
	return m, nil
}

// moveCursor shifts the cursor by days, following it into a neighbouring month.
func (m *MonthModel) moveCursor(days int) {
	m.cursor = datekey.StartOfDay(m.cursor.Year(), m.cursor.Month(), m.cursor.Day()+days)
	if !m.nav.State().Contains(m.cursor) {
		m.nav.SetYear(m.cursor.Year())
		m.nav.SetMonth(int(m.cursor.Month()) - 1)
	}
	m.refresh()
}

// cursorIntoMonth keeps the cursor's day number in the newly displayed
// month, clamped to that month's length.
func (m *MonthModel) cursorIntoMonth() {
	state := m.nav.State()
	day := min(m.cursor.Day(), calpkg.DaysIn(state.Year, state.Month))
	m.cursor = datekey.StartOfDay(state.Year, time.Month(state.Month+1), day)
	m.refresh()
}

// HintText returns the key hints for the month view
func (m MonthModel) HintText() string {
	if m.picker != nil {
		return "j/k: move  enter: go  esc: cancel"
	}
	return "h/j/k/l: day  ←/→: month  [/]: year  t: today  m/y: go to  enter: notes"
}

// View renders the month view
func (m MonthModel) View() string {
	var sb strings.Builder

	title := calMonthTitleStyle.Render(fmt.Sprintf(" %s", m.nav.State()))
	sb.WriteString(title)
	sb.WriteString("\n\n")

	sb.WriteString(m.renderCalendar())

	if m.picker != nil {
		sb.WriteString("\n")
		sb.WriteString(m.picker.view())
	} else {
		sb.WriteString("\n")
		sb.WriteString(navHintStyle.Render(" " + m.HintText()))
	}

	return sb.String()
}

func (m MonthModel) renderCalendar() string {
	var sb strings.Builder

	for _, d := range calpkg.WeekdayNames {
		sb.WriteString(calDayHeaderStyle.Render(d))
	}
	sb.WriteString("\n")

	cursorKey := m.Cursor()
	for _, week := range m.matrix {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, m.renderDay(day, day.Key == cursorKey))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m MonthModel) renderDay(day calpkg.Day, isCursor bool) string {
	count := m.counts[day.Key]
	dayStr := fmt.Sprintf("%2d", day.DayNumber)
	if count > 0 {
		dayStr = fmt.Sprintf("%2d*", day.DayNumber)
	}

	switch {
	case isCursor:
		return calCursorStyle.Render(dayStr)
	case !day.IsCurrentMonth:
		return calOutsideStyle.Render(dayStr)
	case day.IsToday:
		return calTodayStyle.Render(dayStr)
	case count > 0:
		return calHasNotesStyle.Render(dayStr)
	default:
		return calDayStyle.Render(dayStr)
	}
}
