package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deskbooker/internal/config"
	"deskbooker/internal/portal"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Test portal login with a visible browser",
	Long: "Open a non-headless browser, log in with the configured credentials,\n" +
		"and hold the window open briefly so the session can be inspected.",
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prefs, _ := config.LoadPrefs()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess, err := portal.NewSession(ctx, portal.Options{
		Email:        cfg.Email,
		Password:     cfg.Password,
		Headless:     false,
		Location:     cfg.Location,
		Debug:        cfg.Debug,
		ArtifactsDir: prefs.General.ArtifactsDir,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Login(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("  Login successful.")
	sess.Hold(10 * time.Second)
	return nil
}
