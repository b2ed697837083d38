package console

import (
	"os"

	"golang.org/x/term"
)

// isTTYGlobal caches whether stderr is attached to a terminal.
var isTTYGlobal = term.IsTerminal(int(os.Stderr.Fd()))

// IsTTY reports whether output goes to a terminal.
func IsTTY() bool {
	return isTTYGlobal
}

// SetTTY overrides TTY detection (useful for testing).
func SetTTY(tty bool) {
	isTTYGlobal = tty
}
