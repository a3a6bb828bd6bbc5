package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"deskbooker/internal/config"
	"deskbooker/internal/logging"
	"deskbooker/internal/scheduler"

	"github.com/spf13/cobra"
)

var (
	flagRunAt string
	flagNow   bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the booking job daily at a fixed time",
	Long: "Stay in the foreground and run a full booking pass every day at the\n" +
		"configured time. Stop with Ctrl+C; a pass already in flight finishes first.",
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&flagRunAt, "at", "", "Daily run time as HH:MM (default from preferences)")
	scheduleCmd.Flags().BoolVar(&flagNow, "now", false, "Run one booking pass immediately, then keep the schedule")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prefs, _ := config.LoadPrefs()

	runAt := flagRunAt
	if runAt == "" {
		runAt = prefs.General.RunTime
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The job runs under the signal context so Ctrl+C cancels an in-flight
	// pass instead of waiting out every portal timeout.
	job := func() {
		report, err := runOnce(ctx, cfg, prefs)
		if err != nil {
			logging.Log.WithError(err).Error("Scheduled booking run failed")
			return
		}
		logging.Log.Infof("Scheduled run finished: %d/%d booked",
			report.BookedCount(), len(report.Results))
	}

	sched, err := scheduler.New(runAt, job)
	if err != nil {
		return err
	}

	if flagNow {
		job()
	}

	sched.Start()
	fmt.Printf("  Scheduler running, next booking at %s\n",
		sched.NextRun().Format("2006-01-02 15:04:05"))
	fmt.Println("  Press Ctrl+C to stop.")

	<-ctx.Done()
	sched.Stop()
	return nil
}
