// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package process

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// signaled returns the name of the signal that terminated the process
// described by s, if a signal terminated it.
func signaled(s *os.ProcessState) (string, bool) {
	ws, ok := s.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return "", false
	}

	name := unix.SignalName(ws.Signal())
	if name == "" {
		name = ws.Signal().String()
	}

	return name, true
}
