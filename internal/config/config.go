package config

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bashup/dotenv/internal/constants"
	"github.com/bashup/dotenv/internal/paths"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Files   FilesConfig   `toml:"files"`
	Backups BackupsConfig `toml:"backups"`

	// Helper field for runtime use, not saved to TOML
	EnvFile string `toml:"-"`
}

// FilesConfig holds env file related settings.
type FilesConfig struct {
	// DefaultFile is the env file used when no --file command is given.
	// Relative paths resolve against the working directory.
	DefaultFile string `toml:"default_file"`
}

// BackupsConfig controls pre-write backups of edited env files.
type BackupsConfig struct {
	Enabled  bool `toml:"enabled"`
	KeepDays int  `toml:"keep_days"`
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return ""
	}
	return os.Expand(val, mapper)
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Files: FilesConfig{
			DefaultFile: constants.EnvFileName,
		},
		Backups: BackupsConfig{
			Enabled:  false,
			KeepDays: 3,
		},
	}
}

// LoadAppConfig reads the configuration file and returns the configuration.
// Missing config file writes the defaults, matching first-run behavior.
func LoadAppConfig() AppConfig {
	conf := Defaults()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &conf); err == nil {
			conf.EnvFile = ExpandVariables(conf.Files.DefaultFile)
			return conf
		}
	}

	conf.EnvFile = ExpandVariables(conf.Files.DefaultFile)
	_ = SaveAppConfig(conf)
	return conf
}

// SaveAppConfig writes the configuration to dotenv.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
