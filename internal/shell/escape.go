// Package shell provides the POSIX-shell presentation helpers used by the
// export command. The engine itself never interprets quotes; quoting only
// exists so printed export lines can be eval'd safely.
package shell

import (
	"regexp"
	"strings"
)

var nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether s is a legal environment variable identifier.
func ValidName(s string) bool {
	return nameRegex.MatchString(s)
}

// Quote wraps s in single quotes, escaping embedded single quotes with the
// standard '"'"' dance, so the result survives shell evaluation verbatim.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// ExportLine renders one shell-evaluable export statement.
func ExportLine(key, value string) string {
	return "export " + key + "=" + Quote(value)
}
