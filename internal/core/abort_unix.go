//go:build !windows

package core

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// ProcessAborted reports whether err is the result of a child process
// dying from an abort: killed by SIGABRT or SIGTRAP.
func ProcessAborted(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}

	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return false
	}

	sig := status.Signal()

	return sig == unix.SIGABRT || sig == unix.SIGTRAP
}
