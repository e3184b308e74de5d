//go:build windows

package process

import (
	"os"

	"github.com/Paintersrp/devrun/internal/runtime"
)

func decodeState(state *os.ProcessState) runtime.ExitStatus {
	if state == nil {
		return runtime.ExitStatus{}
	}
	return runtime.ExitStatus{Exited: true, Code: state.ExitCode()}
}
