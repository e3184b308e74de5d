package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const prefix = "[devrun]"

// Reporter writes prefixed diagnostic lines for the supervisor. Error lines
// are always written; debug lines only in verbose mode.
type Reporter struct {
	w           io.Writer
	verbose     bool
	errorPrefix string
	debugPrefix string
}

// NewReporter constructs a Reporter writing to w. When colorize is set the
// prefix is coloured red for errors and cyan for debug lines.
func NewReporter(w io.Writer, verbose, colorize bool) *Reporter {
	r := &Reporter{w: w, verbose: verbose, errorPrefix: prefix, debugPrefix: prefix}
	if colorize {
		errColor := color.New(color.FgRed, color.Bold)
		errColor.EnableColor()
		debugColor := color.New(color.FgCyan)
		debugColor.EnableColor()
		r.errorPrefix = errColor.Sprint(prefix)
		r.debugPrefix = debugColor.Sprint(prefix)
	}
	return r
}

func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", r.errorPrefix, fmt.Sprintf(format, args...))
}

func (r *Reporter) Debugf(format string, args ...any) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", r.debugPrefix, fmt.Sprintf(format, args...))
}

// ColorEnabled reports whether diagnostics written to f should be coloured:
// f must be a terminal and neither disabled nor NO_COLOR may be set.
func ColorEnabled(f *os.File, disabled bool) bool {
	if disabled || f == nil {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
