package cliutil

import "github.com/kballard/go-shellquote"

// FormatCommand renders argv as a single line that a POSIX shell would split
// back into the same words.
func FormatCommand(argv []string) string {
	return shellquote.Join(argv...)
}
