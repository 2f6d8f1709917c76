package core

import (
	"net"
	"os"
	"strconv"
	"sync"
)

const (
	// LocalhostEnv overrides the loopback address used by tests.
	LocalhostEnv = "LOCALHOST"

	// PortEnv overrides the base port tests listen on.
	PortEnv = "HARNESS_PORT"

	defaultPort = 12346
)

// InFreeBSDJail reports whether the process runs inside a FreeBSD jail,
// where 127.0.0.1 may be invisible and the jail's own address must be used.
// Probed once per process.
//
//nolint:gochecknoglobals // Memoized process-lifetime probe
var InFreeBSDJail = sync.OnceValue(inJail)

// LocalhostIPv4 returns the IPv4 loopback address tests should bind to:
// the LOCALHOST env override if set, the jail's interface address inside a
// FreeBSD jail, and 127.0.0.1 everywhere else. Probed once per process.
//
//nolint:gochecknoglobals // Memoized process-lifetime probe
var LocalhostIPv4 = sync.OnceValue(func() string {
	if addr := os.Getenv(LocalhostEnv); addr != "" {
		return addr
	}

	if InFreeBSDJail() {
		if addr := firstIPv4Addr(); addr != "" {
			debugLog().Debug().Str("addr", addr).Msg("using jail loopback address")

			return addr
		}
	}

	return "127.0.0.1"
})

// HasIPv6 reports whether a usable IPv6 loopback is configured. Probed once
// per process.
//
//nolint:gochecknoglobals // Memoized process-lifetime probe
var HasIPv6 = sync.OnceValue(func() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}

			if ipNet.IP.To4() == nil && ipNet.IP.IsLoopback() {
				return true
			}
		}
	}

	return false
})

// Port returns the base port for test listeners: the HARNESS_PORT env
// override, then the suite config, then the default.
func Port() int {
	if raw := os.Getenv(PortEnv); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 && port < 65536 {
			return port
		}

		debugLog().Debug().Str("value", raw).Msg("ignoring unparseable port override")
	}

	if cfg := SuiteConfig(); cfg.Port > 0 {
		return cfg.Port
	}

	return defaultPort
}

// MustFreePort asks the OS for an ephemeral port on the loopback address and
// returns it. The listener is closed before returning, so the port can be
// reused immediately; fails the test if the OS refuses a listener.
func MustFreePort(t TestReporter) int {
	t.Helper()

	listener, err := net.Listen("tcp", net.JoinHostPort(LocalhostIPv4(), "0"))
	if err != nil {
		t.Fatalf("could not allocate a free port: %v", err)

		return 0
	}

	port := listener.Addr().(*net.TCPAddr).Port

	_ = listener.Close()

	return port
}

// firstIPv4Addr returns the first IPv4 address on an up interface.
func firstIPv4Addr() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipNet, ok := addr.(*net.IPNet); ok && ipNet.IP.To4() != nil {
				return ipNet.IP.String()
			}
		}
	}

	return ""
}
