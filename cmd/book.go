package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"deskbooker/internal/booking"
	"deskbooker/internal/cli"
	"deskbooker/internal/config"

	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Run one booking pass now",
	Long:  "Log in, compute the upcoming target dates, and book a desk for each one.",
	RunE:  runBook,
}

func init() {
	rootCmd.AddCommand(bookCmd)
}

func runBook(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prefs, _ := config.LoadPrefs()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report, err := runOnce(ctx, cfg, prefs)
	fmt.Print(cli.RenderRunReport(report))
	if err != nil {
		return err
	}
	return noBookingsErr(report)
}

// noBookingsErr turns an empty result map into a non-zero exit so cron
// wrappers can alert. Per-date failures still exit clean; the report lines
// carry them.
func noBookingsErr(report booking.RunReport) error {
	if len(report.Results) == 0 {
		return errors.New("no bookings were made")
	}
	return nil
}
