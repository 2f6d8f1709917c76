//go:build windows

package harness_test

import (
	"context"
	"strings"
	"testing"

	"github.com/toejough/harness"
)

func TestPwdCommand_UsesCmdShell(t *testing.T) {
	t.Parallel()

	cmd := harness.PwdCommand(context.Background())

	if !strings.Contains(strings.ToLower(cmd.Args[0]), "cmd") {
		t.Errorf("expected cmd.exe dispatch, got %v", cmd.Args)
	}
}

func TestDDCommand_FallsBackToFsutil(t *testing.T) {
	t.Parallel()

	cmd := harness.DDCommand(context.Background(), "", `C:\tmp\out.bin`, 4)
	joined := strings.Join(cmd.Args, " ")

	if !strings.Contains(joined, "fsutil") || !strings.Contains(joined, "4096") {
		t.Errorf("expected fsutil createnew with byte size, got %v", cmd.Args)
	}
}
