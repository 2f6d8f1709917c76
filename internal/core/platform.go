package core

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

// goos and goarch are variables so tests can override them.
var (
	//nolint:gochecknoglobals // Overridable for platform-flag tests
	goos = func() string { return runtime.GOOS }
	//nolint:gochecknoglobals // Overridable for platform-flag tests
	goarch = func() string { return runtime.GOARCH }
)

// Platform flags. Each is a direct mapping from the OS identity computed at
// call time (through the overridable goos/goarch hooks).

func IsWindows() bool { return goos() == "windows" }

func IsLinux() bool { return goos() == "linux" }

func IsMacOS() bool { return goos() == "darwin" }

func IsFreeBSD() bool { return goos() == "freebsd" }

func IsOpenBSD() bool { return goos() == "openbsd" }

func IsAIX() bool { return goos() == "aix" }

func IsIllumos() bool { return goos() == "illumos" || goos() == "solaris" }

// Is64Bit reports whether the platform uses 64-bit pointers.
func Is64Bit() bool {
	switch goarch() {
	case "386", "arm", "mips", "mipsle":
		return false
	default:
		return true
	}
}

// TimeoutScaleEnv overrides the timeout multiplier with a float.
const TimeoutScaleEnv = "HARNESS_TIMEOUT_SCALE"

// timeoutScale resolves the multiplier: the env override wins, then the
// suite config, then a platform baseline; the race-detector factor applies
// on top of the platform baseline.
func timeoutScale() float64 {
	if raw := os.Getenv(TimeoutScaleEnv); raw != "" {
		if scale, err := strconv.ParseFloat(raw, 64); err == nil && scale > 0 {
			return scale
		}

		debugLog().Debug().Str("value", raw).Msg("ignoring unparseable timeout scale")
	}

	if cfg := SuiteConfig(); cfg.TimeoutScale > 0 && cfg.TimeoutScale != 1.0 {
		return cfg.TimeoutScale
	}

	scale := 1.0

	// Windows CI machines and the BSDs run the suite noticeably slower
	if IsWindows() || IsFreeBSD() || IsOpenBSD() || IsAIX() {
		scale = 2.0
	}

	return scale * raceScale
}

// PlatformTimeout scales a caller-supplied duration by the platform
// multiplier, so tests tuned on fast Linux machines don't flake elsewhere.
func PlatformTimeout(d time.Duration) time.Duration {
	return time.Duration(float64(d) * timeoutScale())
}
