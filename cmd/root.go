package cmd

import (
	"context"
	"os"

	"deskbooker/internal/booking"
	"deskbooker/internal/config"
	"deskbooker/internal/logging"
	"deskbooker/internal/portal"
	"deskbooker/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDebug   bool
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:           "deskbooker",
	Short:         "Automated WeWork desk booking",
	Long:          "Book WeWork desks for your recurring office days, once or on a daily schedule.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and screenshots")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Path to the credentials file")
}

// loadConfig is the shared configuration path used by all commands that
// touch the portal.
func loadConfig() (config.Config, error) {
	logging.Init(flagDebug)

	cfg, err := config.FromEnv(flagEnvFile)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Debug = flagDebug
	return cfg, nil
}

// runOnce executes one full booking run and records it in history.
func runOnce(ctx context.Context, cfg config.Config, prefs config.Prefs) (booking.RunReport, error) {
	sess, err := portal.NewSession(ctx, portal.Options{
		Email:        cfg.Email,
		Password:     cfg.Password,
		Headless:     cfg.Headless,
		Location:     cfg.Location,
		Debug:        cfg.Debug,
		ArtifactsDir: prefs.General.ArtifactsDir,
	})
	if err != nil {
		return booking.RunReport{Location: cfg.Location, Results: map[string]bool{}}, err
	}
	defer sess.Close()

	report, err := booking.Run(ctx, sess, booking.Options{
		Location:   cfg.Location,
		Days:       cfg.Weekdays(),
		WeeksAhead: cfg.WeeksAhead,
	}, booking.Events{})

	recordHistory(report, err)
	return report, err
}

// recordHistory is best-effort: a broken history database never fails a
// booking run.
func recordHistory(report booking.RunReport, runErr error) {
	st, err := store.Open(store.DefaultPath())
	if err != nil {
		logging.Log.WithError(err).Warn("History database unavailable")
		return
	}
	defer func() { _ = st.Close() }()

	if _, err := st.RecordRun(report, runErr); err != nil {
		logging.Log.WithError(err).Warn("Could not record run history")
	}
}
