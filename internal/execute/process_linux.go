//go:build linux

package execute

import "syscall"

// setPdeathsig ensures children are killed if the parent dies.
func setPdeathsig(attr *syscall.SysProcAttr) {
	attr.Pdeathsig = syscall.SIGKILL
}
