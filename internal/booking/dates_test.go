package booking

import (
	"testing"
	"time"
)

func TestParseDays_Normalizes(t *testing.T) {
	days, err := ParseDays([]string{" Thursday ", "wednesday"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Weekday{time.Wednesday, time.Thursday}
	if len(days) != len(want) {
		t.Fatalf("got %d days, want %d", len(days), len(want))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("days[%d] = %v, want %v", i, days[i], want[i])
		}
	}
}

func TestParseDays_Duplicates(t *testing.T) {
	days, err := ParseDays([]string{"monday", "MONDAY", "Monday"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 || days[0] != time.Monday {
		t.Errorf("got %v, want [Monday]", days)
	}
}

func TestParseDays_Unknown(t *testing.T) {
	if _, err := ParseDays([]string{"wednesday", "funday"}); err == nil {
		t.Fatal("expected error for unknown day name")
	}
}

func TestNextBookingDates_KnownAnchor(t *testing.T) {
	// Monday 2025-09-01, wednesdays + thursdays, two weeks ahead.
	now := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)
	days := []time.Weekday{time.Wednesday, time.Thursday}

	dates := NextBookingDates(now, days, 2)

	want := []string{
		"2025-09-03", "2025-09-04",
		"2025-09-10", "2025-09-11",
		"2025-09-17", "2025-09-18",
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(dates), len(want), dates)
	}
	for i, w := range want {
		if got := DateKey(dates[i]); got != w {
			t.Errorf("dates[%d] = %s, want %s", i, got, w)
		}
	}
}

func TestNextBookingDates_StrictlyFuture(t *testing.T) {
	now := time.Date(2025, 9, 1, 23, 59, 0, 0, time.UTC)
	days := []time.Weekday{time.Monday, time.Friday}

	for _, d := range NextBookingDates(now, days, 3) {
		if !d.After(midnight(now)) {
			t.Errorf("date %s is not after the anchor date", DateKey(d))
		}
	}
}

func TestNextBookingDates_AnchorOnTargetDay(t *testing.T) {
	// Anchoring on a configured weekday excludes today, and the scan window
	// does not extend: that weekday yields weeksAhead occurrences.
	now := time.Date(2025, 9, 3, 9, 0, 0, 0, time.UTC) // a Wednesday
	days := []time.Weekday{time.Wednesday}

	dates := NextBookingDates(now, days, 2)

	want := []string{"2025-09-10", "2025-09-17"}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(dates), len(want), dates)
	}
	for i, w := range want {
		if got := DateKey(dates[i]); got != w {
			t.Errorf("dates[%d] = %s, want %s", i, got, w)
		}
	}
}

func TestNextBookingDates_WeekdayMembership(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	days := []time.Weekday{time.Tuesday}

	dates := NextBookingDates(now, days, 4)
	if len(dates) == 0 {
		t.Fatal("expected at least one date")
	}
	for _, d := range dates {
		if d.Weekday() != time.Tuesday {
			t.Errorf("date %s falls on %v, want Tuesday", DateKey(d), d.Weekday())
		}
	}
}

func TestNextBookingDates_Chronological(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	days := []time.Weekday{time.Monday, time.Wednesday, time.Friday}

	dates := NextBookingDates(now, days, 2)
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			t.Errorf("dates out of order at %d: %s then %s",
				i, DateKey(dates[i-1]), DateKey(dates[i]))
		}
	}
}

func TestNextBookingDates_NoDays(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if dates := NextBookingDates(now, nil, 2); len(dates) != 0 {
		t.Errorf("got %d dates for empty day set, want 0", len(dates))
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2025, 11, 5, 13, 45, 0, 0, time.UTC)
	if got := DateKey(d); got != "2025-11-05" {
		t.Errorf("DateKey = %q, want 2025-11-05", got)
	}
}
