package calendar

import (
	"fmt"
	"time"
)

var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var WeekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DefaultYearSpan is how many years either side of the current year are offered for selection.
const DefaultYearSpan = 50

// FormatMonthYear renders a zero-based month as "January 2024".
func FormatMonthYear(year, month int) string {
	t := noonOf(year, time.Month(month+1), 1)
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}

// YearOptions returns the years from center-span to center+span inclusive.
func YearOptions(center, span int) []int {
	years := make([]int, 0, 2*span+1)
	for y := center - span; y <= center+span; y++ {
		years = append(years, y)
	}
	return years
}
