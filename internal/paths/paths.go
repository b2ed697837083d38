package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/bashup/dotenv/internal/constants"
	"github.com/bashup/dotenv/internal/version"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

// GetConfigFilePath returns the absolute path to the dotenv.toml file.
// It places it in a subdirectory named after the application
// (e.g., ~/.config/dotenv/dotenv.toml).
func GetConfigFilePath() string {
	appName := strings.ToLower(version.ApplicationName)
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appName, constants.ConfigFileName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName, constants.ConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, appName, constants.ConfigFileName)
}

// GetStateDir returns the directory for mutable application state
// (log file, backups of edited env files).
func GetStateDir() string {
	if StateHomeOverride != "" {
		return filepath.Join(StateHomeOverride, strings.ToLower(version.ApplicationName))
	}
	return filepath.Join(xdg.StateHome, strings.ToLower(version.ApplicationName))
}

// GetLogFilePath returns the absolute path of the application log file.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}

// GetBackupsDir returns the directory that holds pre-write backups of
// edited env files.
func GetBackupsDir() string {
	return filepath.Join(GetStateDir(), constants.BackupsDirName)
}
