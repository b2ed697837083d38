package console

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold      = "\033[1m"
	CodeDim       = "\033[2m"
	CodeUnderline = "\033[4m"
	CodeBlink     = "\033[5m"
	CodeReverse   = "\033[7m"

	CodeBoldOff      = "\033[22m"
	CodeDimOff       = "\033[22m"
	CodeUnderlineOff = "\033[24m"
	CodeBlinkOff     = "\033[25m"
	CodeReverseOff   = "\033[27m"

	// Foreground
	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Background
	CodeBlackBg   = "\033[40m"
	CodeRedBg     = "\033[41m"
	CodeGreenBg   = "\033[42m"
	CodeYellowBg  = "\033[43m"
	CodeBlueBg    = "\033[44m"
	CodeMagentaBg = "\033[45m"
	CodeCyanBg    = "\033[46m"
	CodeWhiteBg   = "\033[47m"
)

// AppColors defines the semantic styles used across the program.
// Values are style codes in fg:bg:flags form, resolved by the tag parser.
type AppColors struct {
	// Identity
	ApplicationName string
	Version         string

	// Values and files
	File  string
	Var   string
	Value string

	// Command line echoing
	UserCommand            string
	UserCommandError       string
	UserCommandErrorMarker string
	RunningCommand         string
	FailingCommand         string

	// Usage text
	UsageCommand string
	UsageArg     string
	UsageFile    string
	UsageVar     string

	// Fatal output
	FatalFooter      string
	TraceHeader      string
	TraceFooter      string
	TraceFrameNumber string
	TraceFrameLines  string
	TraceSourceFile  string
	TraceLineNumber  string
	TraceFunction    string
}

// Colors is the built-in palette. Semantic tags like {{_File_}} resolve
// through this struct (field name lowercased).
var Colors = AppColors{
	ApplicationName: "green::B",
	Version:         "cyan",

	File:  "cyan",
	Var:   "magenta",
	Value: "white",

	UserCommand:            "yellow",
	UserCommandError:       "red::B",
	UserCommandErrorMarker: "red::B",
	RunningCommand:         "blue",
	FailingCommand:         "red",

	UsageCommand: "yellow",
	UsageArg:     "cyan",
	UsageFile:    "cyan",
	UsageVar:     "magenta",

	FatalFooter:      "red",
	TraceHeader:      "red::B",
	TraceFooter:      "red::B",
	TraceFrameNumber: "yellow",
	TraceFrameLines:  "dim",
	TraceSourceFile:  "cyan",
	TraceLineNumber:  "yellow",
	TraceFunction:    "magenta",
}
