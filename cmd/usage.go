package cmd

import (
	"fmt"
	"strings"

	"github.com/bashup/dotenv/internal/console"
	"github.com/bashup/dotenv/internal/version"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag/command.
func PrintHelp(target string) {
	fmt.Println(console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag/command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] [{{_UsageCommand_}}<Command>{{|-|}}] ...", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", appName, version.Version))
		printStr("Reads and edits KEY=VALUE env files, preserving comments, blank lines")
		printStr("and the ordering of everything it does not touch.")
		printStr("")
		printStr("You may include multiple commands on the command-line, and they will be executed in")
		printStr("the order given, only stopping on an error. Any flags included only apply to the")
		printStr("following command.")
		printStr("")
		printStr("Commands operate on '{{_UsageFile_}}.env{{|-|}}' in the current directory unless a file was")
		printStr("selected with '{{_UsageCommand_}}--file{{|-|}}' or configured as the default.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""

	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, o := range opts {
			if o == target {
				return true
			}
		}
		return false
	}

	// Flags
	if match("-v", "--verbose") {
		printStr("{{_UsageCommand_}}-v --verbose{{|-|}}")
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr("{{_UsageCommand_}}-x --debug{{|-|}}")
		printStr("	Debug")
	}

	if showAll {
		printStr("")
		printStr("Commands:")
		printStr("")
	}

	if match("-f", "--file") {
		printStr("{{_UsageCommand_}}-f --file{{|-|}} {{_UsageFile_}}<path>{{|-|}}")
		printStr("	Select the env file used by the commands that follow. A missing file")
		printStr("	behaves as an empty one.")
	}
	if match("-g", "--get") {
		printStr("{{_UsageCommand_}}-g --get{{|-|}} {{_UsageVar_}}<KEY>{{|-|}}")
		printStr("	Print the value of the first matching variable. Fails when absent.")
	}
	if match("-p", "--parse") {
		printStr("{{_UsageCommand_}}-p --parse{{|-|}} [{{_UsageVar_}}<KEY>{{|-|}} ...]")
		printStr("	Print KEY=VALUE for each matching variable, in file order, duplicates")
		printStr("	included. With no keys, prints every variable. Fails when nothing matches.")
	}
	if match("-e", "--export") {
		printStr("{{_UsageCommand_}}-e --export{{|-|}} [{{_UsageVar_}}<KEY>{{|-|}} ...]")
		printStr("	Like parse, but also exports each variable and prints eval-able")
		printStr("	'export KEY=...' lines for the calling shell.")
	}
	if match("-s", "--set") {
		printStr("{{_UsageCommand_}}-s --set{{|-|}} {{_UsageArg_}}<KEY=VALUE | +KEY=VALUE | KEY>{{|-|}} [...]")
		printStr("	Set values, set defaults (only applied when the key is absent), or delete")
		printStr("	keys (bare KEY). The file is rewritten atomically only when something changed.")
	}
	if match("-P", "--puts") {
		printStr("{{_UsageCommand_}}-P --puts{{|-|}} {{_UsageArg_}}<line>{{|-|}}")
		printStr("	Append one literal line to the env file.")
	}
	if match("-G", "--generate") {
		printStr("{{_UsageCommand_}}-G --generate{{|-|}} {{_UsageVar_}}<KEY>{{|-|}} {{_UsageArg_}}<command> [args ...]{{|-|}}")
		printStr("	Print the existing value of KEY, or run the command, store its output as")
		printStr("	KEY's value and print it. Consumes the rest of the command line.")
	}
	if match("-V", "--version") {
		printStr("{{_UsageCommand_}}-V --version{{|-|}}")
		printStr("	Show version")
	}
	if match("-h", "--help") {
		printStr("{{_UsageCommand_}}-h --help{{|-|}} [{{_UsageCommand_}}<command>{{|-|}}]")
		printStr("	Show this help, or help for one command")
	}

	return strings.TrimRight(sb.String(), "\n")
}
