// Package debug provides global debug logging flags
package debug

import "fmt"

// Enabled controls whether debug logging is active
var Enabled bool

// Signals controls whether verbose per-frame signal logs are shown
// (raw estimates, smoothed values, landmark gating). Use --debug-signals
// to enable these very noisy logs.
var Signals bool

// Log prints a message only if debug mode is enabled
func Log(format string, args ...interface{}) {
	if Enabled {
		fmt.Printf(format, args...)
	}
}

// Logln prints a message with newline only if debug mode is enabled
func Logln(msg string) {
	if Enabled {
		fmt.Println(msg)
	}
}

// SignalLog prints a message only if signal debug mode is enabled
func SignalLog(format string, args ...interface{}) {
	if Signals {
		fmt.Printf(format, args...)
	}
}
