package constants

// File Names
const (
	EnvFileName    = ".env"
	ConfigFileName = "dotenv.toml"
	LogFileName    = "dotenv.log"
)

// Folder Names
const (
	BackupsDirName = "backups"
)
