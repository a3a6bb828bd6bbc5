package config

import (
	"testing"
)

func TestLoadPrefs_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	p, err := LoadPrefs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.General.RunTime != "09:00" {
		t.Errorf("RunTime = %q, want 09:00", p.General.RunTime)
	}
	if p.Appearance.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", p.Appearance.Theme)
	}
}

func TestSavePrefs_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	p := DefaultPrefs()
	p.General.RunTime = "07:30"
	p.General.ArtifactsDir = "/tmp/artifacts"
	p.Appearance.Theme = "light"

	if err := SavePrefs(p); err != nil {
		t.Fatalf("SavePrefs: %v", err)
	}

	got, err := LoadPrefs()
	if err != nil {
		t.Fatalf("LoadPrefs: %v", err)
	}
	if got.General.RunTime != "07:30" {
		t.Errorf("RunTime = %q, want 07:30", got.General.RunTime)
	}
	if got.General.ArtifactsDir != "/tmp/artifacts" {
		t.Errorf("ArtifactsDir = %q, want /tmp/artifacts", got.General.ArtifactsDir)
	}
	if got.Appearance.Theme != "light" {
		t.Errorf("Theme = %q, want light", got.Appearance.Theme)
	}
}
