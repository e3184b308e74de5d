package runtime

import (
	"context"
	"strconv"
)

// StartSpec describes a single task process to launch.
type StartSpec struct {
	// Name is the task the process runs on behalf of. It is only used for
	// error messages and diagnostics.
	Name    string
	Command string
	Args    []string
	// Env is passed to the child verbatim. A nil slice inherits the
	// supervisor's own environment.
	Env []string
}

// Argv returns the full argument vector, command first.
func (s StartSpec) Argv() []string {
	argv := make([]string, 0, len(s.Args)+1)
	argv = append(argv, s.Command)
	return append(argv, s.Args...)
}

// ExitStatus captures how a child process terminated.
type ExitStatus struct {
	// Exited reports whether the process terminated normally and Code
	// therefore holds its numeric exit code.
	Exited bool
	Code   int
	// Signal names the signal that terminated the process, if any.
	Signal string
}

// ExitCode folds the status into a single process exit code: the numeric code
// when the process exited normally, 1 when it was killed by a signal and 0
// otherwise.
func (s ExitStatus) ExitCode() int {
	switch {
	case s.Exited:
		return s.Code
	case s.Signal != "":
		return 1
	default:
		return 0
	}
}

func (s ExitStatus) String() string {
	switch {
	case s.Exited:
		return "exit code " + strconv.Itoa(s.Code)
	case s.Signal != "":
		return "signal " + s.Signal
	default:
		return "unknown exit"
	}
}

// Instance represents a single running task process.
type Instance interface {
	// Pid returns the operating system process identifier.
	Pid() int

	// Wait blocks until the process terminates. A non-nil error means the
	// process could not be waited on and the status is meaningless.
	Wait() (ExitStatus, error)

	// Terminate asks the process to exit. It does not wait for the process
	// and never escalates to a forced kill where a polite request exists.
	Terminate() error
}

// Runtime describes a backend capable of launching task processes.
type Runtime interface {
	// Start launches the process without a shell, wiring its standard
	// streams to the caller's own.
	Start(ctx context.Context, spec StartSpec) (Instance, error)
}
