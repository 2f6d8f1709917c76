package harness

import (
	"context"
	"os/exec"
	"time"

	"github.com/toejough/harness/internal/core"
)

// Platform flags, computed from the OS identity.

func IsWindows() bool { return core.IsWindows() }

func IsLinux() bool { return core.IsLinux() }

func IsMacOS() bool { return core.IsMacOS() }

func IsFreeBSD() bool { return core.IsFreeBSD() }

func IsOpenBSD() bool { return core.IsOpenBSD() }

func IsAIX() bool { return core.IsAIX() }

func IsIllumos() bool { return core.IsIllumos() }

// Is64Bit reports whether the platform uses 64-bit pointers.
func Is64Bit() bool { return core.Is64Bit() }

// InFreeBSDJail reports whether the process runs inside a FreeBSD jail.
// Probed once per process.
func InFreeBSDJail() bool { return core.InFreeBSDJail() }

// PlatformTimeout scales a caller-supplied duration by the platform
// multiplier, so tests tuned on fast Linux machines don't flake elsewhere.
func PlatformTimeout(d time.Duration) time.Duration {
	return core.PlatformTimeout(d)
}

// TTY detection for the standard file descriptors.

func IsTTY(fd uintptr) bool { return core.IsTTY(fd) }

func StdinIsTTY() bool { return core.StdinIsTTY() }

func StdoutIsTTY() bool { return core.StdoutIsTTY() }

func StderrIsTTY() bool { return core.StderrIsTTY() }

// Network probes.

// LocalhostIPv4 returns the IPv4 loopback address tests should bind to,
// honoring the LOCALHOST override and FreeBSD jails. Probed once per
// process.
func LocalhostIPv4() string { return core.LocalhostIPv4() }

// HasIPv6 reports whether a usable IPv6 loopback is configured. Probed once
// per process.
func HasIPv6() bool { return core.HasIPv6() }

// Port returns the base port for test listeners, honoring HARNESS_PORT.
func Port() int { return core.Port() }

// MustFreePort returns an ephemeral port the OS just vouched for.
func MustFreePort(t TestReporter) int {
	t.Helper()

	return core.MustFreePort(t)
}

// Subprocess helpers and capability probes.

// PwdCommand builds the platform's print-working-directory command.
func PwdCommand(ctx context.Context) *exec.Cmd { return core.PwdCommand(ctx) }

// SpawnPwd runs the platform's pwd command and returns its trimmed output.
func SpawnPwd(ctx context.Context) (string, error) { return core.SpawnPwd(ctx) }

// DDCommand builds a command that writes kilobytes KiB to outFile, reading
// from inFile ("" means /dev/zero) where the platform has dd.
func DDCommand(ctx context.Context, inFile, outFile string, kilobytes int) *exec.Cmd {
	return core.DDCommand(ctx, inFile, outFile, kilobytes)
}

// OpensslCLI returns the path to the openssl binary, or "" when none is
// available. Probed once per process.
func OpensslCLI() string { return core.OpensslCLI() }

// HasOpenSSL reports whether an openssl binary is available for spawning.
func HasOpenSSL() bool { return core.HasOpenSSL() }

// HasCrypto reports whether the runtime was built with crypto support.
func HasCrypto() bool { return core.HasCrypto() }

// CanCreateSymLink reports whether the process may create symlinks. Probed
// once per process.
func CanCreateSymLink() bool { return core.CanCreateSymLink() }

// ProcessAborted reports whether err is the result of a child process dying
// from an abort.
func ProcessAborted(err error) bool { return core.ProcessAborted(err) }

// Skip skips the current test, falling back to the TAP skip marker and a
// clean exit for reporters without Skip support.
func Skip(t TestReporter, reason string) {
	t.Helper()
	core.Skip(t, reason)
}

// SkipIfNot skips unless the probe holds.
func SkipIfNot(t TestReporter, probe bool, reason string) {
	t.Helper()
	core.SkipIfNot(t, probe, reason)
}
