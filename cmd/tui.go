package cmd

import (
	"fmt"

	"deskbooker/internal/config"
	"deskbooker/internal/logging"
	"deskbooker/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive booking dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv(flagEnvFile)
	if err != nil {
		return err
	}
	cfg.Debug = flagDebug

	// Log to file only; stdout belongs to the alternate screen.
	logging.InitQuiet(flagDebug)

	prefs, _ := config.LoadPrefs()

	app := tui.NewApp(cfg, prefs, recordHistory)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
