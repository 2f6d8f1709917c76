package core

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// OpensslCLIEnv overrides the path to the openssl binary.
const OpensslCLIEnv = "HARNESS_OPENSSL_CLI"

// PwdCommand builds the platform's print-working-directory command.
func PwdCommand(ctx context.Context) *exec.Cmd {
	if IsWindows() {
		return exec.CommandContext(ctx, "cmd.exe", "/d", "/c", "cd")
	}

	return exec.CommandContext(ctx, "pwd")
}

// SpawnPwd runs the platform's pwd command and returns its trimmed output.
func SpawnPwd(ctx context.Context) (string, error) {
	out, err := PwdCommand(ctx).Output()
	if err != nil {
		return "", fmt.Errorf("spawn pwd: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

// DDCommand builds a command that writes kilobytes KiB of data to outFile.
// On unix this is dd reading from inFile (pass "" for /dev/zero); Windows
// has no dd, so fsutil creates a zero-filled file of the same size.
func DDCommand(ctx context.Context, inFile, outFile string, kilobytes int) *exec.Cmd {
	if IsWindows() {
		size := strconv.Itoa(kilobytes * 1024)

		return exec.CommandContext(ctx, "fsutil", "file", "createnew", outFile, size)
	}

	if inFile == "" {
		inFile = "/dev/zero"
	}

	return exec.CommandContext(ctx, "dd",
		"if="+inFile,
		"of="+outFile,
		"bs=1024",
		"count="+strconv.Itoa(kilobytes),
	)
}

// OpensslCLI returns the path to the openssl binary, or "" when none is
// available. The HARNESS_OPENSSL_CLI env var takes precedence over PATH
// lookup. Probed once per process.
//
//nolint:gochecknoglobals // Memoized process-lifetime probe
var OpensslCLI = sync.OnceValue(func() string {
	if path := os.Getenv(OpensslCLIEnv); path != "" {
		return path
	}

	path, err := exec.LookPath("openssl")
	if err != nil {
		debugLog().Debug().Err(err).Msg("openssl not found")

		return ""
	}

	return path
})

// HasOpenSSL reports whether an openssl binary is available for spawning.
func HasOpenSSL() bool {
	return OpensslCLI() != ""
}

// HasCrypto reports whether the runtime was built with crypto support.
// Go's standard library always is; the constant exists so suites shared
// across runtimes keep a uniform guard.
func HasCrypto() bool {
	return true
}

// CanCreateSymLink reports whether the process may create symlinks. Always
// true off Windows; on Windows, probed by creating one in a temp dir, since
// the privilege depends on account elevation and developer mode. Probed once
// per process.
//
//nolint:gochecknoglobals // Memoized process-lifetime probe
var CanCreateSymLink = sync.OnceValue(func() bool {
	if !IsWindows() {
		return true
	}

	dir, err := os.MkdirTemp("", "harness-symlink-probe")
	if err != nil {
		return false
	}

	defer func() { _ = os.RemoveAll(dir) }()

	target := filepath.Join(dir, "target")
	if err := os.WriteFile(target, nil, 0o600); err != nil {
		return false
	}

	return os.Symlink(target, filepath.Join(dir, "link")) == nil
})
