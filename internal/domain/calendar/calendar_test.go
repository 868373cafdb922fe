package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"
)

const weekSpan = 6*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond

func TestCalendar_WeekContaining(t *testing.T) {
	cal := New(time.UTC)

	t.Run("wednesday mid-day", func(t *testing.T) {
		w := cal.WeekContaining(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC))
		if !w.Start.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected start: %v", w.Start)
		}
		if !w.End.Equal(time.Date(2024, 6, 18, 23, 59, 59, 999_000_000, time.UTC)) {
			t.Fatalf("unexpected end: %v", w.End)
		}
		if w.Key != "2024-W24" {
			t.Fatalf("expected 2024-W24, got %s", w.Key)
		}
	})

	t.Run("anchor boundary", func(t *testing.T) {
		wed := time.Date(2024, 6, 19, 0, 0, 0, 0, time.UTC)
		if w := cal.WeekContaining(wed); !w.Start.Equal(wed) {
			t.Fatalf("expected start %v, got %v", wed, w.Start)
		}
	})

	t.Run("tuesday closes previous week", func(t *testing.T) {
		w := cal.WeekContaining(time.Date(2024, 6, 18, 23, 59, 59, 0, time.UTC))
		if !w.Start.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected start: %v", w.Start)
		}
	})

	t.Run("sunday before anchor", func(t *testing.T) {
		w := cal.WeekContaining(time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC))
		if !w.Start.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected start: %v", w.Start)
		}
	})

	t.Run("zero instant", func(t *testing.T) {
		if w := cal.WeekContaining(time.Time{}); !w.IsZero() {
			t.Fatalf("expected zero week, got %+v", w)
		}
	})
}

func TestCalendar_ContainmentAndKeyStability(t *testing.T) {
	cal := New(time.UTC)
	from := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	for ts := from; ts.Before(from.AddDate(1, 1, 0)); ts = ts.Add(7 * time.Hour) {
		w := cal.WeekContaining(ts)
		if ts.Before(w.Start) || ts.After(w.End) {
			t.Fatalf("%v not inside [%v, %v]", ts, w.Start, w.End)
		}
		if got := w.End.Sub(w.Start); got != weekSpan {
			t.Fatalf("unexpected span %v for %v", got, ts)
		}
		if w.Start.Weekday() != time.Wednesday {
			t.Fatalf("week for %v starts on %v", ts, w.Start.Weekday())
		}
		if cal.WeekContaining(w.Start).Key != w.Key || cal.WeekContaining(w.End).Key != w.Key {
			t.Fatalf("key not stable across week %s", w.Key)
		}
	}
}

func TestWeekKey(t *testing.T) {
	cases := []struct {
		start time.Time
		want  string
	}{
		{time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), "2024-W01"},
		{time.Date(2023, 12, 27, 0, 0, 0, 0, time.UTC), "2023-W52"},
		{time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), "2024-W24"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-W01"},
	}
	for _, tc := range cases {
		if got := WeekKey(tc.start); got != tc.want {
			t.Fatalf("WeekKey(%v) = %s, want %s", tc.start, got, tc.want)
		}
	}
}

func TestCalendar_WeeksIntersectingMonth(t *testing.T) {
	cal := New(time.UTC)
	weeks := cal.WeeksIntersectingMonth(2024, time.June)
	if len(weeks) != 4 {
		t.Fatalf("expected 4 weeks, got %d", len(weeks))
	}
	wantDays := []int{5, 12, 19, 26}
	for i, w := range weeks {
		if w.Start.Month() != time.June || w.Start.Day() != wantDays[i] {
			t.Fatalf("week %d starts %v", i, w.Start)
		}
		if i > 0 && !weeks[i-1].Start.Before(w.Start) {
			t.Fatalf("weeks not ascending")
		}
	}

	// July 2024 has five Wednesdays.
	if got := len(cal.WeeksIntersectingMonth(2024, time.July)); got != 5 {
		t.Fatalf("expected 5 weeks in July, got %d", got)
	}
}

func TestCalendar_TimezoneProjection(t *testing.T) {
	ny, err := InZone("America/New_York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instant := time.Date(2024, 6, 12, 2, 0, 0, 0, time.UTC) // Tuesday 22:00 in New York

	if w := New(time.UTC).WeekContaining(instant); w.Start.Day() != 12 {
		t.Fatalf("expected UTC week starting on the 12th, got %v", w.Start)
	}
	w := ny.WeekContaining(instant)
	if w.Start.Day() != 5 || w.Start.Location().String() != "America/New_York" {
		t.Fatalf("expected New York week starting on the 5th, got %v", w.Start)
	}

	loc, _ := time.LoadLocation("America/New_York")
	local := New(loc).WeekContaining(instant)
	if !local.Start.Equal(w.Start) || !local.End.Equal(w.End) || local.Key != w.Key {
		t.Fatalf("device-local and named-zone calendars disagree: %+v vs %+v", local, w)
	}

	if _, err := InZone("Not/AZone"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}

func TestCalendar_NextPrevious(t *testing.T) {
	cal := New(time.UTC)
	w := cal.WeekContaining(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))
	if n := cal.Next(w); n.Start.Day() != 19 {
		t.Fatalf("unexpected next week %v", n.Start)
	}
	if p := cal.Previous(w); p.Start.Day() != 5 {
		t.Fatalf("unexpected previous week %v", p.Start)
	}
}

func TestParseMonth(t *testing.T) {
	y, m, ok := ParseMonth("2024-03")
	if !ok || y != 2024 || m != time.March {
		t.Fatalf("unexpected result %d %v %v", y, m, ok)
	}
	if _, _, ok := ParseMonth("March"); ok {
		t.Fatalf("expected failure")
	}
}
