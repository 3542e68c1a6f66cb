// Package logging writes subsystem-prefixed log lines to stderr. Stdout is
// reserved for MCP JSON-RPC traffic and must never receive log output.
package logging

import (
	"log"
	"os"
	"strings"
	"sync/atomic"
)

var debugEnabled atomic.Bool

func init() {
	log.SetOutput(os.Stderr)
	if os.Getenv("LOCALTOOLKIT_DEBUG") == "true" {
		debugEnabled.Store(true)
	}
}

// SetDebug toggles debug output at runtime (the --verbose flag).
func SetDebug(on bool) {
	debugEnabled.Store(on)
}

// Info logs an informational message.
func Info(subsystem, format string, args ...any) {
	log.Printf("["+subsystem+"] "+format, args...)
}

// Warn logs a recoverable problem.
func Warn(subsystem, format string, args ...any) {
	log.Printf("["+subsystem+"] WARN: "+format, args...)
}

// Debug logs a message only when debug output is enabled.
func Debug(subsystem, format string, args ...any) {
	if debugEnabled.Load() {
		log.Printf("["+subsystem+"] "+format, args...)
	}
}

// Truncate flattens s to one line and caps it at maxLen characters, for
// quoting user content in log lines. The cap counts runes so multi-byte
// text is never torn mid-character.
func Truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
