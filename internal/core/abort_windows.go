//go:build windows

package core

import (
	"errors"
	"os/exec"
)

// abortExitCodes are the NTSTATUS values an aborting child exits with on
// Windows: heap corruption, illegal instruction, stack buffer overrun,
// access violation, and breakpoint.
var abortExitCodes = []uint32{
	0xC0000374,
	0xC000001D,
	0xC0000409,
	0xC0000005,
	0x80000003,
}

// ProcessAborted reports whether err is the result of a child process
// dying from an abort.
func ProcessAborted(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}

	code := uint32(exitErr.ExitCode())

	for _, abortCode := range abortExitCodes {
		if code == abortCode {
			return true
		}
	}

	return false
}
