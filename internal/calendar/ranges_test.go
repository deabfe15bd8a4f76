package calendar

import (
	"testing"
	"time"
)

func TestDayRange(t *testing.T) {
	dr := DayRange(date(2026, 2, 6))
	if dr.Start.Day() != 6 || dr.Start.Month() != 2 {
		t.Errorf("expected start Feb 6, got %v", dr.Start)
	}
	if dr.End.Day() != 6 || dr.End.Month() != 2 {
		t.Errorf("expected end Feb 6, got %v", dr.End)
	}
}

func TestWeekRange(t *testing.T) {
	// Feb 6, 2026 is a Friday
	dr := WeekRange(date(2026, 2, 6))
	if dr.Start.Weekday() != time.Monday {
		t.Errorf("expected start on Monday, got %v", dr.Start.Weekday())
	}
	if dr.Start.Day() != 2 {
		t.Errorf("expected start Feb 2, got Feb %d", dr.Start.Day())
	}
	if dr.End.Day() != 8 {
		t.Errorf("expected end Feb 8, got Feb %d", dr.End.Day())
	}
}

func TestWeekRange_Sunday(t *testing.T) {
	// Feb 8, 2026 is a Sunday and belongs to the week starting Feb 2
	dr := WeekRange(date(2026, 2, 8))
	if dr.Start.Day() != 2 {
		t.Errorf("expected start Feb 2, got %v", dr.Start)
	}
}

func TestMonthRange(t *testing.T) {
	dr := MonthRange(date(2026, 2, 15))
	if dr.Start.Day() != 1 {
		t.Errorf("expected start Feb 1, got %v", dr.Start)
	}
	if dr.End.Month() != 2 || dr.End.Day() != 28 {
		t.Errorf("expected end Feb 28, got %v", dr.End)
	}
	if !dr.Contains(date(2026, 2, 28).Add(23 * time.Hour)) {
		t.Error("expected range to contain late Feb 28")
	}
	if dr.Contains(date(2026, 3, 1)) {
		t.Error("did not expect range to contain Mar 1")
	}
}

func TestSpanRange(t *testing.T) {
	at := time.Date(2024, 1, 3, 15, 0, 0, 0, time.Local)
	for _, span := range []string{"day", "week", "month"} {
		r, err := SpanRange(span, at)
		if err != nil {
			t.Fatalf("%s: %v", span, err)
		}
		if !r.Contains(at) {
			t.Errorf("%s range should contain its anchor", span)
		}
	}
	if _, err := SpanRange("year", at); err == nil {
		t.Error("expected error for unknown span")
	}
}

func TestRanges_MidnightDSTGap(t *testing.T) {
	inZone(t, "America/Sao_Paulo")
	sunday := time.Date(2018, 11, 4, 12, 0, 0, 0, time.Local)

	week := WeekRange(time.Date(2018, 11, 1, 12, 0, 0, 0, time.Local))
	if !week.Contains(sunday) {
		t.Errorf("expected week of Nov 1 to contain Sunday Nov 4, got %v..%v", week.Start, week.End)
	}
	if week.Contains(time.Date(2018, 11, 5, 1, 0, 0, 0, time.Local)) {
		t.Error("expected Monday Nov 5 outside the week")
	}

	day := DayRange(sunday)
	if day.Start.Day() != 4 || day.End.Day() != 4 {
		t.Errorf("expected day range inside Nov 4, got %v..%v", day.Start, day.End)
	}
	if day.End.Sub(day.Start) >= 24*time.Hour {
		t.Errorf("expected a 23h day, got %v", day.End.Sub(day.Start))
	}
}
