package cmd

import (
	"fmt"
	"time"

	"deskbooker/internal/booking"
	"deskbooker/internal/cli"

	"github.com/spf13/cobra"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Show the dates the next run would book",
	RunE:  runDates,
}

func init() {
	rootCmd.AddCommand(datesCmd)
}

func runDates(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dates := booking.NextBookingDates(time.Now(), cfg.Weekdays(), cfg.WeeksAhead)
	fmt.Print(cli.RenderDates(cfg.Location, cfg.Days, cfg.WeeksAhead, dates))
	return nil
}
