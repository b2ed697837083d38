package cmd

import (
	"sync"

	"github.com/spf13/pflag"
)

var initFlagsOnce sync.Once

// InitFlags defines the pflags used for argument validation and help.
// Safe to call more than once; the definitions are registered a single time.
func InitFlags() {
	initFlagsOnce.Do(defineFlags)
}

func defineFlags() {
	// Modifiers
	pflag.BoolP("verbose", "v", false, "Verbose output")
	pflag.BoolP("debug", "x", false, "Debug output")
	pflag.BoolP("help", "h", false, "Show help")

	// File selection
	pflag.StringP("file", "f", "", "Select the env file used by following commands")

	// Reads
	pflag.StringP("get", "g", "", "Print the value of a variable")
	pflag.StringP("parse", "p", "", "Print matching KEY=VALUE pairs")
	pflag.StringP("export", "e", "", "Export variables and print shell export lines")

	// Writes
	pflag.StringP("set", "s", "", "Set (KEY=VALUE), default (+KEY=VALUE) or delete (KEY) variables")
	pflag.StringP("puts", "P", "", "Append a literal line to the env file")
	pflag.StringP("generate", "G", "", "Run a command to generate a value if the variable is absent")

	pflag.BoolP("version", "V", false, "Show version")
}
