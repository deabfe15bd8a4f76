// Package datekey converts between calendar dates and the canonical
// YYYY-MM-DD day key, and formats dates and times for display.
package datekey

import (
	"errors"
	"fmt"
	"time"
)

const (
	layout         = "2006-01-02"
	dayLayout      = "Mon, 2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "15:04 / 2006-01-02"
)

// ErrInvalidKey is returned when a string is not a well-formed day key.
var ErrInvalidKey = errors.New("invalid date key")

// Key identifies a calendar day as YYYY-MM-DD.
type Key string

// FromTime returns the key for the local calendar day of t.
func FromTime(t time.Time) Key {
	t = t.Local()
	return Key(fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()))
}

// FromDate returns the key for the given year, month and day.
func FromDate(year int, month time.Month, day int) Key {
	return FromTime(StartOfDay(year, month, day))
}

// StartOfDay returns the first instant of the local day. Day overflow
// normalizes like time.Date. In zones where a DST change skips midnight the
// result is the first existing instant of that day, never the previous day.
func StartOfDay(year int, month time.Month, day int) time.Time {
	noon := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	t := time.Date(noon.Year(), noon.Month(), noon.Day(), 0, 0, 0, 0, time.Local)
	for t.Day() != noon.Day() {
		t = t.Add(time.Hour)
	}
	return t
}

// Parse parses a YYYY-MM-DD key into the start of that local day.
func Parse(s string) (time.Time, error) {
	if len(s) != len(layout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return StartOfDay(t.Year(), t.Month(), t.Day()), nil
}

// Time returns the start of the local day identified by k.
func (k Key) Time() (time.Time, error) {
	return Parse(string(k))
}

// Valid reports whether k parses as a day key.
func (k Key) Valid() bool {
	_, err := Parse(string(k))
	return err == nil
}

func (k Key) String() string {
	return string(k)
}

// Today returns the key for the current local day.
func Today() Key {
	return FromTime(time.Now())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FormatDay renders k as "Mon, 2006-01-02". Unparsable keys are returned as-is.
func FormatDay(k Key) string {
	t, err := k.Time()
	if err != nil {
		return string(k)
	}
	return t.Format(dayLayout)
}

// FormatTime renders the local wall-clock time of t as HH:mm.
func FormatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

// FormatDateTime renders t as "HH:mm / YYYY-MM-DD" in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format(dateTimeLayout)
}
