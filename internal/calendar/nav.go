package calendar

import "time"

// State is the month on display. Month is zero-based.
type State struct {
	Year  int
	Month int
}

// StateFor returns the State containing t.
func StateFor(t time.Time) State {
	return State{Year: t.Year(), Month: int(t.Month()) - 1}
}

// Next returns the following month, rolling into the next year after December.
func (s State) Next() State {
	s.Month++
	if s.Month > 11 {
		s.Month = 0
		s.Year++
	}
	return s
}

// Prev returns the preceding month, rolling into the previous year before January.
func (s State) Prev() State {
	s.Month--
	if s.Month < 0 {
		s.Month = 11
		s.Year--
	}
	return s
}

// WithMonth sets the month without touching the year. Out-of-range values are kept as given.
func (s State) WithMonth(m int) State {
	s.Month = m
	return s
}

// WithYear sets the year without touching the month.
func (s State) WithYear(y int) State {
	s.Year = y
	return s
}

// Contains reports whether t falls in the month s.
func (s State) Contains(t time.Time) bool {
	return t.Year() == s.Year && int(t.Month())-1 == s.Month
}

func (s State) String() string {
	return FormatMonthYear(s.Year, s.Month)
}

// Navigator holds the displayed month and applies navigation transitions.
type Navigator struct {
	state State
	now   func() time.Time
}

// NewNavigator starts on the current month of the given clock. A nil clock uses time.Now.
func NewNavigator(now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	return &Navigator{state: StateFor(now()), now: now}
}

// State returns the displayed month.
func (n *Navigator) State() State {
	return n.state
}

func (n *Navigator) PrevMonth() State {
	n.state = n.state.Prev()
	return n.state
}

func (n *Navigator) NextMonth() State {
	n.state = n.state.Next()
	return n.state
}

// GoToday jumps to the clock's current month.
func (n *Navigator) GoToday() State {
	n.state = StateFor(n.now())
	return n.state
}

func (n *Navigator) SetMonth(m int) State {
	n.state = n.state.WithMonth(m)
	return n.state
}

func (n *Navigator) SetYear(y int) State {
	n.state = n.state.WithYear(y)
	return n.state
}

// Today returns the navigator's clock reading.
func (n *Navigator) Today() time.Time {
	return n.now()
}

// Matrix builds the grid for the displayed month.
func (n *Navigator) Matrix() Matrix {
	return BuildMatrix(n.state.Year, n.state.Month, n.now())
}
