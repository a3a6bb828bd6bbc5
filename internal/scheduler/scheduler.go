// Package scheduler runs the booking job once a day at a configured time.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"deskbooker/internal/logging"

	"github.com/robfig/cron/v3"
)

// Scheduler fires one daily trigger. There is no missed-run catch-up and no
// overlapping-run prevention: a trigger that fires while a previous job is
// still running simply starts another job.
type Scheduler struct {
	engine *cron.Cron
	entry  cron.EntryID
}

// CronSpec converts a 24-hour "HH:MM" local time into a daily cron spec.
func CronSpec(runTime string) (string, error) {
	parts := strings.Split(runTime, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid run time %q, want HH:MM", runTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in run time %q", runTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in run time %q", runTime)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// New builds a scheduler that runs job daily at runTime local time.
func New(runTime string, job func()) (*Scheduler, error) {
	spec, err := CronSpec(runTime)
	if err != nil {
		return nil, err
	}

	engine := cron.New(cron.WithLocation(time.Local))
	entry, err := engine.AddFunc(spec, job)
	if err != nil {
		return nil, fmt.Errorf("adding daily job: %w", err)
	}

	return &Scheduler{engine: engine, entry: entry}, nil
}

// Start begins the trigger loop.
func (s *Scheduler) Start() {
	s.engine.Start()
	logging.Log.Infof("Scheduler started, next run at %s",
		s.NextRun().Format("2006-01-02 15:04:05"))
}

// NextRun returns the next trigger time.
func (s *Scheduler) NextRun() time.Time {
	return s.engine.Entry(s.entry).Next
}

// Stop halts the trigger loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	logging.Log.Info("Stopping scheduler...")
	<-s.engine.Stop().Done()
	logging.Log.Info("Scheduler stopped")
}
