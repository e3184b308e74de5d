//go:build windows

package process

func (p *processInstance) terminate() error {
	return p.cmd.Process.Kill()
}
