package cmd

import (
	"testing"

	"deskbooker/internal/booking"
)

func TestNoBookingsErr_AllDatesFailed(t *testing.T) {
	// Every date skipped (non-zero credit cost) still counts as a completed
	// run: statuses were reported, so the exit code stays zero.
	report := booking.RunReport{
		Location: "10 York Road",
		Results: map[string]bool{
			"2025-09-03": false,
			"2025-09-04": false,
		},
		Details: []booking.DateResult{
			{Date: "2025-09-03", Outcome: booking.OutcomeSkipped},
			{Date: "2025-09-04", Outcome: booking.OutcomeSkipped},
		},
	}

	if err := noBookingsErr(report); err != nil {
		t.Errorf("all-failed run returned %v, want nil (exit 0)", err)
	}
}

func TestNoBookingsErr_EmptyResults(t *testing.T) {
	report := booking.RunReport{
		Location: "10 York Road",
		Results:  map[string]bool{},
	}

	if err := noBookingsErr(report); err == nil {
		t.Error("empty result map returned nil, want an error (exit 1)")
	}
}
