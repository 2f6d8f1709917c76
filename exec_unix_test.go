//go:build !windows

package harness_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toejough/harness"
)

func TestSpawnPwd_ReportsWorkingDirectory(t *testing.T) {
	t.Parallel()

	got, err := harness.SpawnPwd(context.Background())
	if err != nil {
		t.Fatalf("SpawnPwd failed: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	// Resolve symlinks on both sides; some CI systems run under a linked tmp
	gotResolved, _ := filepath.EvalSymlinks(got)
	wdResolved, _ := filepath.EvalSymlinks(wd)

	if gotResolved != wdResolved {
		t.Errorf("expected pwd %q, got %q", wdResolved, gotResolved)
	}
}

func TestDDCommand_WritesRequestedSize(t *testing.T) {
	t.Parallel()

	outFile := filepath.Join(t.TempDir(), "out.bin")

	cmd := harness.DDCommand(context.Background(), "", outFile, 4)
	if err := cmd.Run(); err != nil {
		t.Fatalf("dd failed: %v", err)
	}

	info, err := os.Stat(outFile)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}

	if info.Size() != 4*1024 {
		t.Errorf("expected 4096 bytes, got %d", info.Size())
	}
}

func TestDDCommand_ArgsNameCount(t *testing.T) {
	t.Parallel()

	cmd := harness.DDCommand(context.Background(), "/dev/urandom", "/tmp/x", 16)
	joined := strings.Join(cmd.Args, " ")

	if !strings.Contains(joined, "count=16") || !strings.Contains(joined, "if=/dev/urandom") {
		t.Errorf("unexpected dd args: %v", cmd.Args)
	}
}

func TestProcessAborted_TrueForAbortSignal(t *testing.T) {
	t.Parallel()

	err := exec.Command("sh", "-c", "kill -ABRT $$").Run()
	if err == nil {
		t.Fatal("expected aborted child to report an error")
	}

	if !harness.ProcessAborted(err) {
		t.Errorf("expected ProcessAborted true for SIGABRT child, got false (%v)", err)
	}
}

func TestProcessAborted_FalseForPlainExitFailure(t *testing.T) {
	t.Parallel()

	err := exec.Command("sh", "-c", "exit 1").Run()
	if err == nil {
		t.Fatal("expected failing child to report an error")
	}

	if harness.ProcessAborted(err) {
		t.Error("expected ProcessAborted false for plain exit failure")
	}
}

func TestProcessAborted_FalseForNonExitError(t *testing.T) {
	t.Parallel()

	if harness.ProcessAborted(os.ErrNotExist) {
		t.Error("expected ProcessAborted false for non-exec error")
	}
}

func TestCanCreateSymLink_TrueOffWindows(t *testing.T) {
	t.Parallel()

	if !harness.CanCreateSymLink() {
		t.Error("expected symlink capability off Windows")
	}
}
