package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskbooker/internal/logging"
)

// Outcome is the per-date result of a booking attempt. The portal's
// confirmation dialog makes this a three-way decision: a zero-cost booking
// is confirmed, a non-zero cost means a desk is already reserved for that
// date, and everything else means the desk or location control was never
// located.
type Outcome int

const (
	OutcomeBooked Outcome = iota
	OutcomeSkipped
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBooked:
		return "booked"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "not-found"
	}
}

// Booked collapses the outcome to the boolean the result map reports.
// Skipped and not-found both read as failure; callers that need the
// distinction must look at the Outcome itself.
func (o Outcome) Booked() bool {
	return o == OutcomeBooked
}

// Portal is the surface the engine drives. The production implementation
// automates the member portal in a real browser; tests substitute a fake.
type Portal interface {
	Login(ctx context.Context) error
	OpenDeskBooking(ctx context.Context) error
	SelectLocation(ctx context.Context, location string) error
	BookDate(ctx context.Context, date time.Time) (Outcome, error)
}

// Options configures a single booking run.
type Options struct {
	Location   string
	Days       []time.Weekday
	WeeksAhead int

	// Pause between consecutive date attempts. Defaults to 500ms.
	Pause time.Duration

	// Now overrides the anchor time for date computation. Zero means
	// time.Now(); only tests set this.
	Now time.Time
}

// Events carries the one-way notifications a run emits. All fields are
// optional; nil callbacks are skipped. There is no backpressure: callbacks
// run on the booking goroutine and must not block.
type Events struct {
	Status   func(text string)
	Progress func(done, total int)
	Result   func(date string, outcome Outcome)
}

func (e Events) status(text string) {
	if e.Status != nil {
		e.Status(text)
	}
}

func (e Events) progress(done, total int) {
	if e.Progress != nil {
		e.Progress(done, total)
	}
}

func (e Events) result(date string, outcome Outcome) {
	if e.Result != nil {
		e.Result(date, outcome)
	}
}

// DateResult is one date's detailed outcome.
type DateResult struct {
	Date    string
	Outcome Outcome
}

// RunReport is the product of one booking run. Results collapses each
// outcome to a bool; Details keeps the three-way outcome for reporting.
type RunReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Location   string
	Results    map[string]bool
	Details    []DateResult
}

// BookedCount returns how many dates were actually booked.
func (r RunReport) BookedCount() int {
	n := 0
	for _, ok := range r.Results {
		if ok {
			n++
		}
	}
	return n
}

// ErrLoginFailed aborts a run: nothing can be booked without a session.
var ErrLoginFailed = errors.New("login failed")

// ErrNoTargetDates means the configuration produced an empty date set.
var ErrNoTargetDates = errors.New("no dates to book based on configuration")

// Run executes one booking run: login, open the booking page, pick the
// location, then attempt each target date in order. Login and navigation
// failures abort the run with an empty result map; every later failure is
// per-date and the run continues to the next date.
func Run(ctx context.Context, p Portal, opts Options, ev Events) (RunReport, error) {
	log := logging.Log

	report := RunReport{
		StartedAt: time.Now(),
		Location:  opts.Location,
		Results:   make(map[string]bool),
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	pause := opts.Pause
	if pause == 0 {
		pause = 500 * time.Millisecond
	}

	dates := NextBookingDates(now, opts.Days, opts.WeeksAhead)
	if len(dates) == 0 {
		report.FinishedAt = time.Now()
		return report, ErrNoTargetDates
	}
	ev.status(fmt.Sprintf("Found %d dates to book", len(dates)))

	ev.status("Logging in...")
	if err := p.Login(ctx); err != nil {
		log.WithError(err).Error("Login failed")
		report.FinishedAt = time.Now()
		return report, ErrLoginFailed
	}
	ev.status("Login successful")

	ev.status("Opening desk booking page...")
	if err := p.OpenDeskBooking(ctx); err != nil {
		log.WithError(err).Error("Failed to open desk booking page")
		report.FinishedAt = time.Now()
		return report, err
	}

	ev.status("Selecting location: " + opts.Location)
	if err := p.SelectLocation(ctx, opts.Location); err != nil {
		// Best-effort: the location may be pre-configured on the account.
		log.WithError(err).Warn("Location selection may have failed")
	}

	for i, date := range dates {
		key := DateKey(date)
		ev.status("Booking " + key + "...")

		outcome, err := p.BookDate(ctx, date)
		if err != nil {
			log.WithError(err).WithField("date", key).Error("Booking attempt failed")
			outcome = OutcomeNotFound
		}

		report.Results[key] = outcome.Booked()
		report.Details = append(report.Details, DateResult{Date: key, Outcome: outcome})
		log.WithField("date", key).WithField("outcome", outcome.String()).Info("Booking attempt finished")

		ev.result(key, outcome)
		ev.progress(i+1, len(dates))

		if i < len(dates)-1 {
			select {
			case <-ctx.Done():
				report.FinishedAt = time.Now()
				return report, ctx.Err()
			case <-time.After(pause):
			}
		}
	}

	ev.status("Booking complete")
	report.FinishedAt = time.Now()
	return report, nil
}
