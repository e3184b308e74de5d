//go:build !windows

package process

import "syscall"

func (p *processInstance) terminate() error {
	return p.cmd.Process.Signal(syscall.SIGTERM)
}
