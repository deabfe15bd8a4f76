package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"pgregory.net/rapid"

	"calnotes/internal/datekey"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// zones covers UTC, midnight DST transitions (Sao Paulo until 2019, Beirut)
// and an ordinary 02:00 transition (New York).
var zones = []string{"UTC", "America/Sao_Paulo", "Asia/Beirut", "America/New_York"}

// inZone sets time.Local for the rest of the test.
func inZone(t *testing.T, name string) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestBuildMatrix_January2024(t *testing.T) {
	// Jan 1, 2024 is a Monday; Jan 31 is a Wednesday
	matrix := BuildMatrix(2024, 0, date(2024, 1, 15))

	if len(matrix) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(matrix))
	}
	first := matrix[0][0]
	if first.Key != "2024-01-01" || !first.IsCurrentMonth {
		t.Errorf("expected grid to start on 2024-01-01 in month, got %s (current=%v)", first.Key, first.IsCurrentMonth)
	}
	last := matrix[4][6]
	if last.Key != "2024-02-04" || last.IsCurrentMonth {
		t.Errorf("expected grid to end on 2024-02-04 outside month, got %s (current=%v)", last.Key, last.IsCurrentMonth)
	}

	row, col, ok := matrix.Find("2024-01-15")
	if !ok {
		t.Fatal("expected to find 2024-01-15")
	}
	if !matrix[row][col].IsToday {
		t.Error("expected 2024-01-15 to be flagged today")
	}
}

func TestBuildMatrix_LeadingDaysFromPreviousYear(t *testing.T) {
	// Mar 1, 2026 is a Sunday so the first row is mostly February
	matrix := BuildMatrix(2026, 2, date(2000, 1, 1))
	if matrix[0][0].Key != "2026-02-23" {
		t.Errorf("expected first cell 2026-02-23, got %s", matrix[0][0].Key)
	}
	if matrix[0][6].Key != "2026-03-01" || !matrix[0][6].IsCurrentMonth {
		t.Errorf("expected last cell of first row to be Mar 1, got %s", matrix[0][6].Key)
	}

	// Jan 2027 starts on a Friday; leading days come from December 2026
	jan := BuildMatrix(2027, 0, date(2000, 1, 1))
	if jan[0][0].Key != "2026-12-28" {
		t.Errorf("expected first cell 2026-12-28, got %s", jan[0][0].Key)
	}
	if jan[0][0].IsCurrentMonth {
		t.Error("December days must not be flagged as current month")
	}
}

func TestBuildMatrix_TrailingDaysIntoNextYear(t *testing.T) {
	// Dec 31, 2025 is a Wednesday
	matrix := BuildMatrix(2025, 11, date(2000, 1, 1))
	last := matrix[len(matrix)-1][6]
	if last.Key != "2026-01-04" {
		t.Errorf("expected last cell 2026-01-04, got %s", last.Key)
	}
}

func TestBuildMatrix_NoTodayOutsideMonthRange(t *testing.T) {
	matrix := BuildMatrix(2024, 5, date(2030, 1, 1))
	for _, d := range matrix.Days() {
		if d.IsToday {
			t.Errorf("unexpected today flag on %s", d.Key)
		}
	}
}

func TestBuildMatrix_Properties(t *testing.T) {
	for _, zone := range zones {
		t.Run(zone, func(t *testing.T) {
			inZone(t, zone)
			rapid.Check(t, checkMatrix)
		})
	}
}

func checkMatrix(t *rapid.T) {
	year := rapid.IntRange(1900, 2200).Draw(t, "year")
	month := rapid.IntRange(0, 11).Draw(t, "month")
	matrix := BuildMatrix(year, month, date(2024, 1, 2))

	inMonth := 0
	seenIn, leftMonth := false, false
	var prev Day
	for r, week := range matrix {
		if len(week) != 7 {
			t.Fatalf("row %d has %d cells", r, len(week))
		}
		for c, d := range week {
			if want := time.Weekday((c + 1) % 7); d.Date.Weekday() != want {
				t.Fatalf("cell %d,%d (%s) is %v, expected %v", r, c, d.Key, d.Date.Weekday(), want)
			}
			if prev.Key != "" {
				next := datekey.FromDate(prev.Date.Year(), prev.Date.Month(), prev.Date.Day()+1)
				if d.Key != next {
					t.Fatalf("non-consecutive days %s -> %s", prev.Key, d.Key)
				}
			}
			prev = d
			if d.DayNumber != d.Date.Day() || datekey.FromTime(d.Date) != d.Key {
				t.Fatalf("cell %s does not match its date %v", d.Key, d.Date)
			}
			if d.IsCurrentMonth {
				if leftMonth {
					t.Fatalf("month days are not contiguous at %s", d.Key)
				}
				seenIn = true
				inMonth++
			} else if seenIn {
				leftMonth = true
			}
		}
	}
	if inMonth != DaysIn(year, month) {
		t.Fatalf("expected %d current-month cells, got %d", DaysIn(year, month), inMonth)
	}
}

func TestBuildMatrix_MidnightDSTGap(t *testing.T) {
	// Sao Paulo skipped 2018-11-04 00:00, going straight to 01:00
	inZone(t, "America/Sao_Paulo")

	matrix := BuildMatrix(2018, 10, time.Date(2018, 11, 4, 12, 0, 0, 0, time.Local))
	if got := matrix[0][6].Key; got != "2018-11-04" {
		t.Errorf("expected Sunday 2018-11-04 to end the first row, got %s", got)
	}
	if got := matrix[len(matrix)-1][6].Key; got != "2018-12-02" {
		t.Errorf("expected grid to end on 2018-12-02, got %s", got)
	}
	count := 0
	for _, d := range matrix.Days() {
		if d.IsCurrentMonth {
			count++
		}
	}
	if count != 30 {
		t.Errorf("expected 30 November cells, got %d", count)
	}
	row, col, ok := matrix.Find("2018-11-04")
	if !ok || !matrix[row][col].IsToday {
		t.Error("expected 2018-11-04 flagged today")
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year, month, expected int
	}{
		{2024, 1, 29},
		{2023, 1, 28},
		{1900, 1, 28},
		{2000, 1, 29},
		{2024, 0, 31},
		{2024, 3, 30},
		{2024, 11, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.expected {
			t.Errorf("DaysIn(%d, %d): expected %d, got %d", tt.year, tt.month, tt.expected, got)
		}
	}
}

func TestFormatMonthYear(t *testing.T) {
	if got := FormatMonthYear(2024, 0); got != "January 2024" {
		t.Errorf("expected January 2024, got %q", got)
	}
	if got := FormatMonthYear(2024, 11); got != "December 2024" {
		t.Errorf("expected December 2024, got %q", got)
	}
}

func TestYearOptions(t *testing.T) {
	years := YearOptions(2026, DefaultYearSpan)
	if len(years) != 101 {
		t.Fatalf("expected 101 years, got %d", len(years))
	}
	if years[0] != 1976 || years[100] != 2076 {
		t.Errorf("unexpected bounds %d..%d", years[0], years[100])
	}
}
