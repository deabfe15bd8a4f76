package calendar

import (
	"fmt"
	"time"

	"calnotes/internal/datekey"
)

// DateRange represents an inclusive range of days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// DayRange returns a DateRange for a single day
func DayRange(date time.Time) DateRange {
	return daysFrom(date.Year(), date.Month(), date.Day(), 1)
}

// WeekRange returns a DateRange for the week containing the given date (Mon-Sun)
func WeekRange(date time.Time) DateRange {
	return daysFrom(date.Year(), date.Month(), date.Day()-mondayOffset(date), 7)
}

// MonthRange returns a DateRange for the entire month containing the given date
func MonthRange(date time.Time) DateRange {
	return daysFrom(date.Year(), date.Month(), 1, DaysIn(date.Year(), int(date.Month())-1))
}

// daysFrom covers n whole local days starting at the given day. Both ends are
// computed from the calendar date so a skipped midnight cannot shift them.
func daysFrom(year int, month time.Month, day, n int) DateRange {
	return DateRange{
		Start: datekey.StartOfDay(year, month, day),
		End:   datekey.StartOfDay(year, month, day+n).Add(-time.Nanosecond),
	}
}

// SpanRange returns the day, week or month range around date.
func SpanRange(span string, date time.Time) (DateRange, error) {
	switch span {
	case "day":
		return DayRange(date), nil
	case "week":
		return WeekRange(date), nil
	case "month":
		return MonthRange(date), nil
	default:
		return DateRange{}, fmt.Errorf("unknown span %q, want day, week or month", span)
	}
}
