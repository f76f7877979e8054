package ai

import "sync/atomic"

// debugLoggingEnabled gates debug logs on the tick path.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the ai package.
// Call during initialization, after parsing config.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard expensive debug log calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("expensive operation", "data", computeExpensiveData())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
