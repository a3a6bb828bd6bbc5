package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"deskbooker/internal/booking"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleReport(start time.Time) booking.RunReport {
	return booking.RunReport{
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Minute),
		Location:   "10 York Road",
		Results: map[string]bool{
			"2025-09-03": true,
			"2025-09-04": false,
		},
		Details: []booking.DateResult{
			{Date: "2025-09-03", Outcome: booking.OutcomeBooked},
			{Date: "2025-09-04", Outcome: booking.OutcomeSkipped},
		},
	}
}

func TestRecordRun_RoundTrip(t *testing.T) {
	st := openTestStore(t)
	start := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	runID, err := st.RecordRun(sampleReport(start), nil)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("runID = %d, want positive", runID)
	}

	runs, err := st.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	r := runs[0]
	if r.Location != "10 York Road" {
		t.Errorf("Location = %q", r.Location)
	}
	if r.Total != 2 || r.Booked != 1 {
		t.Errorf("Total/Booked = %d/%d, want 2/1", r.Total, r.Booked)
	}
	if r.Error != "" {
		t.Errorf("Error = %q, want empty", r.Error)
	}
	if !r.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", r.StartedAt, start)
	}
}

func TestRecordRun_Error(t *testing.T) {
	st := openTestStore(t)

	report := booking.RunReport{
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Location:   "10 York Road",
		Results:    map[string]bool{},
	}
	if _, err := st.RecordRun(report, errors.New("login failed")); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := st.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Error != "login failed" {
		t.Errorf("runs = %+v, want one run with the error recorded", runs)
	}
}

func TestRunResults_Ordering(t *testing.T) {
	st := openTestStore(t)
	start := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	runID, err := st.RecordRun(sampleReport(start), nil)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	results, err := st.RunResults(runID)
	if err != nil {
		t.Fatalf("RunResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if results[0].Date != "2025-09-03" || !results[0].Booked || results[0].Outcome != "booked" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Date != "2025-09-04" || results[1].Booked || results[1].Outcome != "skipped" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestRecentRuns_NewestFirst(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := st.RecordRun(sampleReport(base.Add(time.Duration(i)*time.Hour)), nil); err != nil {
			t.Fatalf("RecordRun #%d: %v", i, err)
		}
	}

	runs, err := st.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2 (limit)", len(runs))
	}
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Errorf("runs not newest-first: %v then %v", runs[0].StartedAt, runs[1].StartedAt)
	}
}
