package core

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// DebugEnv enables harness debug logging when non-empty.
const DebugEnv = "HARNESS_DEBUG"

// unexported variables.
var (
	//nolint:gochecknoglobals // Process-wide logger, rebuilt when config changes
	logger zerolog.Logger
	//nolint:gochecknoglobals // Guards logger initialization
	loggerOnce sync.Once
	//nolint:gochecknoglobals // Guards logger rebuilds
	loggerMu sync.Mutex
)

// debugLog returns the harness debug logger. It is a no-op unless
// HARNESS_DEBUG is set or the suite config enables debug; probes and
// verify-time checks log through it so a flaky environment can be inspected
// without changing test output in the normal case.
func debugLog() *zerolog.Logger {
	loggerOnce.Do(func() { resetLogger() })

	loggerMu.Lock()
	defer loggerMu.Unlock()

	return &logger
}

func resetLogger() {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if os.Getenv(DebugEnv) == "" && !suiteConfig.Debug {
		logger = zerolog.Nop()

		return
	}

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("component", "harness").Logger()
}
