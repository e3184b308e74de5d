package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/Paintersrp/devrun/internal/runtime"
)

type runtimeImpl struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New constructs a runtime that executes tasks as local processes attached to
// the current process's standard streams.
func New() runtime.Runtime {
	return newWithStreams(os.Stdin, os.Stdout, os.Stderr)
}

func newWithStreams(stdin io.Reader, stdout, stderr io.Writer) *runtimeImpl {
	return &runtimeImpl{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (r *runtimeImpl) Start(ctx context.Context, spec runtime.StartSpec) (runtime.Instance, error) {
	if spec.Command == "" {
		return nil, fmt.Errorf("process runtime for task %s requires a command", spec.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("start task %s: %w", spec.Name, err)
	}

	// exec.Command rather than CommandContext: cancellation must not SIGKILL
	// the child, termination is driven by the supervisor.
	cmd := exec.Command(spec.Command, spec.Args...)
	if spec.Env != nil {
		cmd.Env = append([]string(nil), spec.Env...)
	}
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start task %s: %w", spec.Name, err)
	}

	return &processInstance{name: spec.Name, cmd: cmd}, nil
}

type processInstance struct {
	name string
	cmd  *exec.Cmd
}

func (p *processInstance) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *processInstance) Wait() (runtime.ExitStatus, error) {
	if err := p.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return runtime.ExitStatus{}, fmt.Errorf("wait task %s: %w", p.name, err)
		}
	}
	return decodeState(p.cmd.ProcessState), nil
}

func (p *processInstance) Terminate() error {
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.terminate(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("terminate task %s: %w", p.name, err)
	}
	return nil
}
