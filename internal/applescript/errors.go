package applescript

import (
	"fmt"
	"time"
)

// InjectionError reports a parameter whose value cannot be encoded as an
// AppleScript literal. It is returned before any process is spawned.
type InjectionError struct {
	Name   string
	Reason string
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("cannot inject parameter %q: %s", e.Name, e.Reason)
}

// TimeoutError reports that the osascript process did not finish within the
// requested timeout and was killed.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("script execution timed out after %s", e.Timeout)
}

// ProcessError reports an abnormal process exit or a script-level failure
// signaled through the in-band ERROR: marker. Message is surfaced verbatim.
type ProcessError struct {
	Message  string
	ExitCode int
}

func (e *ProcessError) Error() string {
	return e.Message
}

// SecurityError reports a script rejected by the pre-execution pattern scan.
type SecurityError struct {
	Pattern string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("potentially dangerous pattern detected: %s", e.Pattern)
}

// DateFormatError reports an ISO date string that the forward date conversion
// could not parse. The reverse direction never returns this.
type DateFormatError struct {
	Input  string
	Reason string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}
