package core

import (
	"strings"
	"testing"
)

// plainReporter supports only the minimal TestReporter surface, forcing the
// process-exit skip path.
type plainReporter struct {
	fatals []string
}

func (r *plainReporter) Helper() {}

func (r *plainReporter) Fatalf(format string, _ ...any) {
	r.fatals = append(r.fatals, format)
}

// skipReporter records Skip calls.
type skipReporter struct {
	plainReporter

	skipped []any
}

func (r *skipReporter) Skip(args ...any) {
	r.skipped = append(r.skipped, args...)
}

// The skip tests swap the process-exit hooks, so they stay sequential.

func swapSkipHooks(t *testing.T) (lines *[]string, codes *[]int) {
	t.Helper()

	prevExit, prevOut := osExit, skipOut

	var (
		outLines  []string
		exitCodes []int
	)

	osExit = func(code int) { exitCodes = append(exitCodes, code) }
	skipOut = func(line string) { outLines = append(outLines, line) }

	t.Cleanup(func() {
		osExit, skipOut = prevExit, prevOut
	})

	return &outLines, &exitCodes
}

func TestSkip_UsesReporterSkipWhenSupported(t *testing.T) {
	lines, codes := swapSkipHooks(t)

	reporter := &skipReporter{}
	Skip(reporter, "no openssl binary")

	if len(reporter.skipped) != 1 || reporter.skipped[0] != "no openssl binary" {
		t.Errorf("expected reporter skip, got %v", reporter.skipped)
	}

	if len(*lines) != 0 || len(*codes) != 0 {
		t.Error("reporter skip should not touch the process-exit path")
	}
}

func TestSkip_PrintsMarkerAndExitsForPlainReporters(t *testing.T) {
	lines, codes := swapSkipHooks(t)

	Skip(&plainReporter{}, "requires ipv6")

	if len(*lines) != 1 || !strings.Contains((*lines)[0], "1..0 # Skipped: requires ipv6") {
		t.Errorf("expected TAP skip marker, got %v", *lines)
	}

	if len(*codes) != 1 || (*codes)[0] != 0 {
		t.Errorf("expected clean exit, got %v", *codes)
	}
}

func TestSkipIfNot_SkipsOnlyWhenProbeFails(t *testing.T) {
	lines, _ := swapSkipHooks(t)

	SkipIfNot(&plainReporter{}, true, "unused")

	if len(*lines) != 0 {
		t.Errorf("probe held; expected no skip, got %v", *lines)
	}

	SkipIfNot(&plainReporter{}, false, "probe failed")

	if len(*lines) != 1 {
		t.Errorf("probe failed; expected skip marker, got %v", *lines)
	}
}
