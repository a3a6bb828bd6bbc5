// Package booking holds the pure booking logic: target-date computation,
// the credit-cost confirmation rule, and the run orchestration over a portal.
package booking

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// dayNames maps configured day names to Go weekdays.
var dayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseDays converts a list of day names (case-insensitive, surrounding
// whitespace ignored) into weekdays. Duplicates are dropped.
func ParseDays(names []string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(names))
	var days []time.Weekday
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		wd, ok := dayNames[key]
		if !ok {
			return nil, fmt.Errorf("unknown booking day %q", name)
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		days = append(days, wd)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days, nil
}

// NextBookingDates returns the calendar dates to target, in chronological
// order. It scans day offsets 0 through weeksAhead*7+6 from now and keeps
// dates whose weekday is in the configured set and whose calendar date is
// strictly after now's. Note that when now itself falls on a configured
// weekday, that weekday yields weeksAhead occurrences instead of
// weeksAhead+1: today is excluded but the scan window does not extend.
func NextBookingDates(now time.Time, days []time.Weekday, weeksAhead int) []time.Time {
	targets := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		targets[d] = true
	}

	today := midnight(now)
	var dates []time.Time
	for offset := 0; offset < weeksAhead*7+7; offset++ {
		candidate := today.AddDate(0, 0, offset)
		if targets[candidate.Weekday()] && candidate.After(today) {
			dates = append(dates, candidate)
		}
	}
	return dates
}

// DateKey formats a date the way the result map and the portal expect it.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
