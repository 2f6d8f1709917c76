//go:build freebsd

package core

import (
	"golang.org/x/sys/unix"
)

// inJail asks the kernel whether the process runs inside a jail.
func inJail() bool {
	jailed, err := unix.SysctlUint32("security.jail.jailed")
	if err != nil {
		debugLog().Debug().Err(err).Msg("jail sysctl probe failed")

		return false
	}

	return jailed == 1
}
