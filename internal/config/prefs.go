package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Prefs holds non-secret tool preferences, kept separate from the .env
// credentials in an XDG-style config file.
type Prefs struct {
	General    GeneralPrefs    `toml:"general"`
	Appearance AppearancePrefs `toml:"appearance"`
}

// GeneralPrefs holds scheduling and artifact preferences.
type GeneralPrefs struct {
	// RunTime is the daily trigger in 24-hour HH:MM local time.
	RunTime string `toml:"run_time"`
	// ArtifactsDir receives debug screenshots and HTML dumps.
	ArtifactsDir string `toml:"artifacts_dir,omitempty"`
}

// AppearancePrefs holds TUI theme settings.
type AppearancePrefs struct {
	Theme string `toml:"theme"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	return Prefs{
		General:    GeneralPrefs{RunTime: "09:00"},
		Appearance: AppearancePrefs{Theme: "dark"},
	}
}

// PrefsDir returns the XDG-compliant config directory.
func PrefsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskbooker")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "deskbooker")
}

// PrefsPath returns the full path to the preferences file.
func PrefsPath() string {
	return filepath.Join(PrefsDir(), "config.toml")
}

// LoadPrefs reads the preferences file, returning defaults if it doesn't
// exist.
func LoadPrefs() (Prefs, error) {
	p := DefaultPrefs()

	data, err := os.ReadFile(PrefsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("reading preferences: %w", err)
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing preferences: %w", err)
	}
	if p.General.RunTime == "" {
		p.General.RunTime = "09:00"
	}
	return p, nil
}

// SavePrefs writes the preferences file, creating the directory if needed.
func SavePrefs(p Prefs) error {
	if err := os.MkdirAll(PrefsDir(), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(PrefsPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(p)
}
