// Package calendar builds month grids and tracks which month is on display.
package calendar

import (
	"time"

	"calnotes/internal/datekey"
)

// Day is a single cell of the month grid.
type Day struct {
	Date           time.Time
	DayNumber      int
	Key            datekey.Key
	IsCurrentMonth bool
	IsToday        bool
}

// Matrix holds the weeks of a month grid, Monday first.
type Matrix [][]Day

// BuildMatrix returns the full weeks covering the given zero-based month.
// Days outside the month are included so every row has seven cells.
func BuildMatrix(year, month int, today time.Time) Matrix {
	first := noonOf(year, time.Month(month+1), 1)
	lead := mondayOffset(first)
	total := lead + DaysIn(year, month)
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	// Cells are computed by day offset from noon of the first, which exists
	// in every zone, so a skipped midnight cannot repeat or drop a day.
	days := make([]Day, 0, total)
	for i := 0; i < total; i++ {
		d := noonOf(first.Year(), first.Month(), 1-lead+i)
		days = append(days, Day{
			Date:           datekey.StartOfDay(d.Year(), d.Month(), d.Day()),
			DayNumber:      d.Day(),
			Key:            datekey.FromTime(d),
			IsCurrentMonth: d.Year() == first.Year() && d.Month() == first.Month(),
			IsToday:        datekey.SameDay(d, today),
		})
	}

	matrix := make(Matrix, 0, len(days)/7)
	for i := 0; i < len(days); i += 7 {
		matrix = append(matrix, days[i:i+7])
	}
	return matrix
}

// Days flattens the matrix into a single slice.
func (m Matrix) Days() []Day {
	var days []Day
	for _, week := range m {
		days = append(days, week...)
	}
	return days
}

// Find returns the row and column of the cell for key.
func (m Matrix) Find(key datekey.Key) (row, col int, ok bool) {
	for r, week := range m {
		for c, d := range week {
			if d.Key == key {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// DaysIn returns the number of days in the zero-based month.
func DaysIn(year, month int) int {
	return noonOf(year, time.Month(month+2), 0).Day()
}

func noonOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

// mondayOffset returns how many days t is past the Monday of its week.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
