//go:build !freebsd

package core

// inJail is always false outside FreeBSD; only FreeBSD jails change which
// loopback addresses are visible.
func inJail() bool {
	return false
}
