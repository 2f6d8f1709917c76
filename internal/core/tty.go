package core

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY reports whether the file descriptor is attached to a terminal,
// including Cygwin/MSYS2 pseudo-terminals on Windows.
func IsTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func StdinIsTTY() bool { return IsTTY(os.Stdin.Fd()) }

func StdoutIsTTY() bool { return IsTTY(os.Stdout.Fd()) }

func StderrIsTTY() bool { return IsTTY(os.Stderr.Fd()) }
