package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"deskbooker/internal/booking"
	"deskbooker/internal/config"
	"deskbooker/internal/scheduler"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-time setup",
	Long: "Collect credentials and booking preferences, then write the .env file\n" +
		"and the preferences file.",
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	prefs, _ := config.LoadPrefs()

	email := os.Getenv("WEWORK_EMAIL")
	password := os.Getenv("WEWORK_PASSWORD")
	location := os.Getenv("WEWORK_LOCATION")
	if location == "" {
		location = config.DefaultLocation
	}

	days := []string{}
	for _, d := range strings.Split(config.DefaultDays, ",") {
		days = append(days, strings.TrimSpace(d))
	}

	weeks := strconv.Itoa(config.DefaultWeeksAhead)
	headless := true
	runTime := prefs.General.RunTime
	themeName := prefs.Appearance.Theme

	nonEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("WeWork email").
				Value(&email).
				Validate(nonEmpty),
			huh.NewInput().
				Title("WeWork password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(nonEmpty),
			huh.NewInput().
				Title("Location").
				Description("Shown exactly as the portal names it").
				Value(&location).
				Validate(nonEmpty),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Booking days").
				Options(huh.NewOptions(
					"monday", "tuesday", "wednesday", "thursday",
					"friday", "saturday", "sunday",
				)...).
				Value(&days).
				Validate(func(sel []string) error {
					if len(sel) == 0 {
						return errors.New("pick at least one day")
					}
					_, err := booking.ParseDays(sel)
					return err
				}),
			huh.NewInput().
				Title("Weeks ahead").
				Value(&weeks).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return errors.New("must be a non-negative number")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Run the browser headless?").
				Value(&headless),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Daily run time").
				Description("24-hour HH:MM, used by the schedule command").
				Value(&runTime).
				Validate(func(s string) error {
					_, err := scheduler.CronSpec(strings.TrimSpace(s))
					return err
				}),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := writeEnvFile(flagEnvFile, email, password, location, days, headless, weeks); err != nil {
		return err
	}

	prefs.General.RunTime = strings.TrimSpace(runTime)
	prefs.Appearance.Theme = themeName
	if err := config.SavePrefs(prefs); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Wrote %s\n", flagEnvFile)
	fmt.Printf("  Wrote %s\n", config.PrefsPath())
	fmt.Println("  Run `deskbooker book` to try a booking pass.")
	return nil
}

func writeEnvFile(path, email, password, location string, days []string, headless bool, weeks string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "WEWORK_EMAIL=%s\n", email)
	fmt.Fprintf(&b, "WEWORK_PASSWORD=%s\n", password)
	fmt.Fprintf(&b, "WEWORK_LOCATION=%s\n", location)
	fmt.Fprintf(&b, "BOOKING_DAYS=%s\n", strings.Join(days, ","))
	fmt.Fprintf(&b, "HEADLESS=%t\n", headless)
	fmt.Fprintf(&b, "WEEKS_AHEAD=%s\n", strings.TrimSpace(weeks))

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
