package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bashup/dotenv/internal/config"
	"github.com/bashup/dotenv/internal/console"
	"github.com/bashup/dotenv/internal/logger"
	"github.com/bashup/dotenv/internal/session"
	"github.com/bashup/dotenv/internal/shell"
	"github.com/bashup/dotenv/internal/version"
)

// Execute runs the logic for a sequence of command groups against a single
// session. Commands run in order, stopping at the first failure.
func Execute(ctx context.Context, groups []CommandGroup) int {
	conf := config.LoadAppConfig()
	sess := session.New(conf)

	ranCommand := false

	for _, group := range groups {
		// Apply modifier flags before the command executes
		for _, flag := range group.Flags {
			switch flag {
			case "-v", "--verbose":
				logger.SetLevel(logger.LevelInfo)
			case "-x", "--debug":
				logger.SetLevel(logger.LevelDebug)
			}
		}

		if group.Command == "" {
			continue
		}
		ranCommand = true

		code := runCommand(ctx, sess, group)

		// Modifier flags only cover the command they precede
		logger.SetLevel(logger.LevelNotice)

		if code != 0 {
			return code
		}
	}

	// No commands given: show usage, like running the original with no args
	if !ranCommand {
		PrintHelp("")
	}

	return 0
}

func runCommand(ctx context.Context, sess *session.Session, group CommandGroup) int {
	args := group.Args

	switch group.Command {
	case "-h", "--help":
		target := ""
		if len(args) > 0 {
			target = args[0]
		}
		PrintHelp(target)

	case "-V", "--version":
		console.Println(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))

	case "-f", "--file":
		if err := sess.Select(ctx, args[0]); err != nil {
			logger.Error(ctx, "Failed to select '{{_File_}}%s{{|-|}}': %v", args[0], err)
			return 1
		}

	case "-g", "--get":
		value, err := sess.Get(ctx, args[0])
		if err != nil {
			return failLookup(ctx, err)
		}
		fmt.Println(value)

	case "-p", "--parse":
		pairs, err := sess.Parse(ctx, args)
		if err != nil {
			return failLookup(ctx, err)
		}
		for _, p := range pairs {
			fmt.Printf("%s=%s\n", p.Key, p.Value)
		}

	case "-e", "--export":
		pairs, err := sess.Export(ctx, args)
		if err != nil {
			return failLookup(ctx, err)
		}
		for _, p := range pairs {
			fmt.Println(shell.ExportLine(p.Key, p.Value))
		}

	case "-s", "--set":
		if _, err := sess.Set(ctx, args); err != nil {
			logger.Error(ctx, "Failed to update '{{_File_}}%s{{|-|}}': %v", sess.Path, err)
			return 1
		}

	case "-P", "--puts":
		if err := sess.Puts(ctx, args[0]); err != nil {
			logger.Error(ctx, "Failed to append to '{{_File_}}%s{{|-|}}': %v", sess.Path, err)
			return 1
		}

	case "-G", "--generate":
		value, err := sess.Generate(ctx, args[0], args[1:])
		if err != nil {
			logger.Error(ctx, "Failed to generate '{{_Var_}}%s{{|-|}}': %v", args[0], err)
			return 1
		}
		fmt.Println(value)

	default:
		logger.Error(ctx, "Unhandled command '{{_UserCommand_}}%s{{|-|}}'.", group.Command)
		return 1
	}

	return 0
}

// failLookup maps lookup failures to an exit code. NotFound is a routine
// outcome and only surfaces at info level; invalid keys and IO errors are
// real errors.
func failLookup(ctx context.Context, err error) int {
	var keyErr *session.InvalidKeyError
	switch {
	case errors.Is(err, session.ErrNotFound):
		logger.Info(ctx, "%v", err)
	case errors.As(err, &keyErr):
		logger.Error(ctx, "Invalid variable name '{{_Var_}}%s{{|-|}}'.", keyErr.Key)
	default:
		logger.Error(ctx, "%v", err)
	}
	return 1
}
