package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bashup/dotenv/internal/version"
)

var ErrHelp = errors.New("help shown")

// ParseError wraps argument parsing errors to provide rich output matching
// the original script's style.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--set")
}

func (e *ParseError) Error() string {
	indent := "   "

	// Build command line string
	var cmdLineParts []string

	cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName))

	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		str := e.Args[i]
		if i == e.Index {
			// Highlight failing option
			str = fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", str)
		} else {
			str = fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", str)
		}
		cmdLineParts = append(cmdLineParts, str)
	}

	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}

	formattedCmd := fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", e.FailingCommand)
	formattedOpt := fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt)

	replacer := strings.NewReplacer(
		"%c", formattedCmd,
		"%o", formattedOpt,
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	// Add usage extract if applicable
	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(GetUsage(e.FailingCommand), "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	}

	return out
}

// CommandGroup represents a parsed group of flags and a command with its arguments
type CommandGroup struct {
	Flags   []string
	Command string
	Args    []string
}

// Parse parses the raw command line arguments into groups of command
// operations. Modifier flags apply to the command that follows them;
// commands run left to right in the order given.
func Parse(args []string) ([]CommandGroup, error) {
	// Initialize flags to make sure help text is available
	InitFlags()

	modifiers := map[string]bool{
		"-v": true, "--verbose": true,
		"-x": true, "--debug": true,
	}

	// Pre-process args to expand combined short flags (e.g. -vg -> -v -g).
	// Arguments consumed literally must not be expanded: everything after
	// --generate belongs to the generator command, and --puts takes its
	// next argument verbatim.
	var expandedArgs []string
	literalRest := false
	literalNext := false
	for _, arg := range args {
		if literalRest {
			expandedArgs = append(expandedArgs, arg)
			continue
		}
		if literalNext {
			literalNext = false
			expandedArgs = append(expandedArgs, arg)
			continue
		}
		switch arg {
		case "-G", "--generate":
			literalRest = true
		case "-P", "--puts":
			literalNext = true
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			for _, c := range arg[1:] {
				expandedArgs = append(expandedArgs, fmt.Sprintf("-%c", c))
				switch c {
				case 'G':
					literalRest = true
				case 'P':
					literalNext = true
				}
			}
		} else {
			expandedArgs = append(expandedArgs, arg)
		}
	}

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string

	i := 0
	for i < len(expandedArgs) {
		arg := expandedArgs[i]

		if !strings.HasPrefix(arg, "-") {
			// Non-flag argument at top level
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: fmt.Sprintf("invalid option '%s'", arg), FailingCommand: lastCommand}
		}

		if modifiers[arg] {
			currentGroup.Flags = append(currentGroup.Flags, arg)
			lastCommand = arg
			i++
			continue
		}

		// Not a modifier, starts with "-": it's a command.
		// Validate that the command is a known flag.
		cmdName := strings.TrimLeft(arg, "-")
		var validFlag *pflag.Flag
		if strings.HasPrefix(arg, "--") {
			validFlag = pflag.Lookup(cmdName)
		} else if len(cmdName) == 1 {
			validFlag = pflag.CommandLine.ShorthandLookup(cmdName)
		}

		if validFlag == nil {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o"}
		}

		currentGroup.Command = arg
		lastCommand = arg
		cmd := arg
		i++

		consumesUntilDash := false

		switch cmd {
		// Commands that take unlimited arguments (until next flag)
		case "-p", "--parse", "-e", "--export":
			consumesUntilDash = true

		// Commands that require at least one argument
		case "-s", "--set":
			if i >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i], "-") {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires an argument.", cmd)}
			}
			consumesUntilDash = true

		// Generate consumes the rest of the line: a variable name plus the
		// command (and its flags) that produces the value
		case "-G", "--generate":
			if i+1 >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i], "-") {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires a variable name and a command.", cmd)}
			}
			currentGroup.Args = append(currentGroup.Args, expandedArgs[i:]...)
			i = len(expandedArgs)

		// Commands that require exactly one argument
		case "-f", "--file", "-g", "--get":
			if i >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i], "-") {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires an argument.", cmd)}
			}
			currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
			i++

		// Puts takes exactly one literal argument, leading dash and all
		case "-P", "--puts":
			if i >= len(expandedArgs) {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires an argument.", cmd)}
			}
			currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
			i++

		// Help allows an optional flag argument
		case "-h", "--help":
			if i < len(expandedArgs) && strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}

		// Commands that take no arguments
		case "-V", "--version":

		default:
			// Known flag but not a command we dispatch; consumes nothing.
			// Stray arguments are caught as invalid options next iteration.
		}

		if consumesUntilDash {
			for i < len(expandedArgs) {
				if strings.HasPrefix(expandedArgs[i], "-") {
					break
				}
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}
		}

		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{}
	}

	// Trailing modifiers with no command still form a group; the executor
	// applies their flags (e.g. a bare -x enables debug for nothing, which
	// is harmless) and runs no command.
	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}

	return groups, nil
}
