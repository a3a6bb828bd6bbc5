package booking

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakePortal implements Portal for engine tests.
type fakePortal struct {
	loginErr  error
	openErr   error
	selectErr error
	book      func(date time.Time) (Outcome, error)

	loginCalls  int
	selectCalls int
	bookCalls   []string
}

func (f *fakePortal) Login(_ context.Context) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakePortal) OpenDeskBooking(_ context.Context) error {
	return f.openErr
}

func (f *fakePortal) SelectLocation(_ context.Context, _ string) error {
	f.selectCalls++
	return f.selectErr
}

func (f *fakePortal) BookDate(_ context.Context, date time.Time) (Outcome, error) {
	f.bookCalls = append(f.bookCalls, DateKey(date))
	if f.book != nil {
		return f.book(date)
	}
	return OutcomeBooked, nil
}

// testOptions targets two wednesdays from a fixed Monday anchor.
func testOptions() Options {
	return Options{
		Location:   "10 York Road",
		Days:       []time.Weekday{time.Wednesday},
		WeeksAhead: 1,
		Pause:      time.Millisecond,
		Now:        time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestRun_BooksAllDates(t *testing.T) {
	p := &fakePortal{}
	report, err := Run(context.Background(), p, testOptions(), Events{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2025-09-03", "2025-09-10"}
	if len(p.bookCalls) != len(want) {
		t.Fatalf("BookDate called %d times, want %d", len(p.bookCalls), len(want))
	}
	for i, w := range want {
		if p.bookCalls[i] != w {
			t.Errorf("bookCalls[%d] = %s, want %s", i, p.bookCalls[i], w)
		}
	}

	if report.BookedCount() != 2 {
		t.Errorf("BookedCount = %d, want 2", report.BookedCount())
	}
	for _, key := range want {
		if !report.Results[key] {
			t.Errorf("Results[%s] = false, want true", key)
		}
	}
	if report.FinishedAt.Before(report.StartedAt) {
		t.Error("FinishedAt before StartedAt")
	}
}

func TestRun_LoginFailure(t *testing.T) {
	p := &fakePortal{loginErr: errors.New("bad credentials")}
	report, err := Run(context.Background(), p, testOptions(), Events{})

	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("err = %v, want ErrLoginFailed", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("Results has %d entries after failed login, want 0", len(report.Results))
	}
	if len(p.bookCalls) != 0 {
		t.Errorf("BookDate called %d times after failed login, want 0", len(p.bookCalls))
	}
}

func TestRun_NoTargetDates(t *testing.T) {
	opts := testOptions()
	opts.Days = nil

	p := &fakePortal{}
	_, err := Run(context.Background(), p, opts, Events{})
	if !errors.Is(err, ErrNoTargetDates) {
		t.Fatalf("err = %v, want ErrNoTargetDates", err)
	}
	if p.loginCalls != 0 {
		t.Error("Login called despite empty date set")
	}
}

func TestRun_OpenDeskBookingFailure(t *testing.T) {
	p := &fakePortal{openErr: errors.New("navigation timeout")}
	report, err := Run(context.Background(), p, testOptions(), Events{})

	if err == nil {
		t.Fatal("expected error when booking page cannot open")
	}
	if len(report.Results) != 0 {
		t.Errorf("Results has %d entries, want 0", len(report.Results))
	}
}

func TestRun_SelectLocationFailureContinues(t *testing.T) {
	p := &fakePortal{selectErr: errors.New("picker not found")}
	report, err := Run(context.Background(), p, testOptions(), Events{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 2 {
		t.Errorf("Results has %d entries, want 2", len(report.Results))
	}
}

func TestRun_OutcomeCollapse(t *testing.T) {
	outcomes := map[string]Outcome{
		"2025-09-03": OutcomeSkipped,
		"2025-09-10": OutcomeBooked,
	}
	p := &fakePortal{book: func(date time.Time) (Outcome, error) {
		return outcomes[DateKey(date)], nil
	}}

	report, err := Run(context.Background(), p, testOptions(), Events{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Results["2025-09-03"] {
		t.Error("skipped date collapsed to true, want false")
	}
	if !report.Results["2025-09-10"] {
		t.Error("booked date collapsed to false, want true")
	}

	if len(report.Details) != 2 {
		t.Fatalf("Details has %d entries, want 2", len(report.Details))
	}
	if report.Details[0].Outcome != OutcomeSkipped {
		t.Errorf("Details[0].Outcome = %v, want skipped", report.Details[0].Outcome)
	}
}

func TestRun_BookDateErrorRecordsNotFound(t *testing.T) {
	p := &fakePortal{book: func(date time.Time) (Outcome, error) {
		if DateKey(date) == "2025-09-03" {
			return OutcomeBooked, errors.New("page crashed")
		}
		return OutcomeBooked, nil
	}}

	report, err := Run(context.Background(), p, testOptions(), Events{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Results["2025-09-03"] {
		t.Error("errored date recorded as booked")
	}
	if !report.Results["2025-09-10"] {
		t.Error("run did not continue past the errored date")
	}
	if report.Details[0].Outcome != OutcomeNotFound {
		t.Errorf("Details[0].Outcome = %v, want not-found", report.Details[0].Outcome)
	}
}

func TestRun_EmitsEvents(t *testing.T) {
	var statuses []string
	var lastDone, lastTotal int
	var results []string

	ev := Events{
		Status:   func(s string) { statuses = append(statuses, s) },
		Progress: func(done, total int) { lastDone, lastTotal = done, total },
		Result:   func(date string, _ Outcome) { results = append(results, date) },
	}

	p := &fakePortal{}
	if _, err := Run(context.Background(), p, testOptions(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(statuses) == 0 {
		t.Error("no status events emitted")
	}
	if lastDone != 2 || lastTotal != 2 {
		t.Errorf("final progress = %d/%d, want 2/2", lastDone, lastTotal)
	}
	if len(results) != 2 {
		t.Errorf("got %d result events, want 2", len(results))
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := &fakePortal{book: func(_ time.Time) (Outcome, error) {
		cancel() // cancel during the first attempt
		return OutcomeBooked, nil
	}}

	opts := testOptions()
	opts.Pause = 50 * time.Millisecond

	report, err := Run(ctx, p, opts, Events{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(report.Results) != 1 {
		t.Errorf("Results has %d entries, want 1 (first date only)", len(report.Results))
	}
}

func TestOutcome_Booked(t *testing.T) {
	if !OutcomeBooked.Booked() {
		t.Error("OutcomeBooked.Booked() = false")
	}
	if OutcomeSkipped.Booked() || OutcomeNotFound.Booked() {
		t.Error("non-booked outcome reports Booked() = true")
	}
}
