//go:build darwin

package execute

import "syscall"

// setPdeathsig is a no-op on macOS; Pdeathsig is not supported on Darwin.
func setPdeathsig(_ *syscall.SysProcAttr) {}
