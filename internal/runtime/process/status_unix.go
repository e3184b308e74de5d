//go:build !windows

package process

import (
	"os"
	"syscall"

	"github.com/Paintersrp/devrun/internal/runtime"
)

func decodeState(state *os.ProcessState) runtime.ExitStatus {
	if state == nil {
		return runtime.ExitStatus{}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok {
		switch {
		case ws.Signaled():
			return runtime.ExitStatus{Signal: ws.Signal().String()}
		case ws.Exited():
			return runtime.ExitStatus{Exited: true, Code: ws.ExitStatus()}
		}
	}
	if code := state.ExitCode(); code >= 0 {
		return runtime.ExitStatus{Exited: true, Code: code}
	}
	return runtime.ExitStatus{}
}
