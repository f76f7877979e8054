package nav

import "sync/atomic"

// debugLoggingEnabled guards per-refresh debug logs, which run every few
// ticks. Set once from main after parsing the configured log level.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the navigation subsystem.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
