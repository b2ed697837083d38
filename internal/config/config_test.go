package config

import (
	"os"
	"testing"

	"github.com/adrg/xdg"

	"github.com/bashup/dotenv/internal/constants"
	"github.com/bashup/dotenv/internal/paths"
)

func setupConfigHome(t *testing.T) {
	t.Helper()
	paths.ConfigHomeOverride = t.TempDir()
	t.Cleanup(func() { paths.ConfigHomeOverride = "" })
}

func TestLoadWritesDefaults(t *testing.T) {
	setupConfigHome(t)

	conf := LoadAppConfig()
	if conf.Files.DefaultFile != constants.EnvFileName {
		t.Errorf("DefaultFile = %q, want %q", conf.Files.DefaultFile, constants.EnvFileName)
	}
	if conf.EnvFile != constants.EnvFileName {
		t.Errorf("EnvFile = %q, want %q", conf.EnvFile, constants.EnvFileName)
	}
	if conf.Backups.Enabled {
		t.Error("backups enabled by default")
	}

	// First load persists the defaults
	if _, err := os.Stat(paths.GetConfigFilePath()); err != nil {
		t.Errorf("config file not written on first load: %v", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	setupConfigHome(t)

	conf := Defaults()
	conf.Files.DefaultFile = "/srv/app/.env"
	conf.Backups.Enabled = true
	conf.Backups.KeepDays = 7

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig: %v", err)
	}

	loaded := LoadAppConfig()
	if loaded.Files.DefaultFile != "/srv/app/.env" {
		t.Errorf("DefaultFile = %q, want %q", loaded.Files.DefaultFile, "/srv/app/.env")
	}
	if loaded.EnvFile != "/srv/app/.env" {
		t.Errorf("EnvFile = %q, want %q", loaded.EnvFile, "/srv/app/.env")
	}
	if !loaded.Backups.Enabled || loaded.Backups.KeepDays != 7 {
		t.Errorf("Backups = %+v, want enabled with KeepDays 7", loaded.Backups)
	}
}

func TestExpandVariables(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"${HOME}/.env", home + "/.env"},
		{"${XDG_CONFIG_HOME}/app/.env", xdg.ConfigHome + "/app/.env"},
		{"no variables", "no variables"},
		{"${UNDEFINED_THING}/x", "/x"},
	}

	for _, tt := range tests {
		if got := ExpandVariables(tt.input); got != tt.expected {
			t.Errorf("ExpandVariables(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
