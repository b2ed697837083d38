package exec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bashup/dotenv/internal/logger"
)

// CaptureOutput executes a command and returns its captured standard output.
// Standard error passes through to the caller's stderr so a failing
// generator can explain itself. A non-zero exit or spawn failure is an
// error; whatever was written to stdout before the failure is discarded.
func CaptureOutput(ctx context.Context, command string, args ...string) (string, error) {
	cmdText := command
	if len(args) > 0 {
		cmdText = fmt.Sprintf("%s %s", command, strings.Join(args, " "))
	}
	logger.Info(ctx, "Running: {{_RunningCommand_}}%s{{|-|}}", cmdText)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		logger.Debug(ctx, "Failing command: {{_FailingCommand_}}%s{{|-|}}", cmdText)
		return "", fmt.Errorf("command %q failed: %w", cmdText, err)
	}
	return string(output), nil
}
