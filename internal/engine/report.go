package engine

import (
	"fmt"
	"io"
)

// Reporter receives the supervisor's diagnostic output. Errorf lines are
// always shown; Debugf lines only when the caller asked for verbose output.
type Reporter interface {
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

type writerReporter struct {
	w       io.Writer
	verbose bool
}

// NewWriterReporter returns a Reporter that writes "[devrun]" prefixed lines
// to w.
func NewWriterReporter(w io.Writer, verbose bool) Reporter {
	return &writerReporter{w: w, verbose: verbose}
}

func (r *writerReporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.w, "[devrun] "+format+"\n", args...)
}

func (r *writerReporter) Debugf(format string, args ...any) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.w, "[devrun] "+format+"\n", args...)
}
