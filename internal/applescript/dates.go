package applescript

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoDateLayout     = "2006-01-02"
	isoDateTimeLayout = "2006-01-02T15:04:05"
	asDateLayout      = "01/02/2006 03:04:05 PM"

	// asVerboseLayout matches the locale-formatted dates AppleScript emits
	// when a date value is coerced to a string, e.g.
	// "Monday, January 1, 2024 at 12:00:00 PM".
	asVerboseLayout = "Monday, January 2, 2006 at 3:04:05 PM"
)

// ISOToASDate converts an ISO-8601 date or datetime string into the
// MM/DD/YYYY hh:mm:ss AM/PM literal AppleScript's date constructor accepts.
// A timezone suffix (Z or numeric offset) is stripped; the remaining
// wall-clock fields are used as-is. Date-only input defaults to midnight.
func ISOToASDate(iso string) (string, error) {
	if iso == "" {
		return "", &DateFormatError{Input: iso, Reason: "date string cannot be empty"}
	}

	if !strings.Contains(iso, "T") {
		t, err := time.Parse(isoDateLayout, iso)
		if err != nil {
			return "", formatErr(iso)
		}
		return t.Format("01/02/2006") + " 12:00:00 AM", nil
	}

	s := stripTimezone(iso)
	t, err := time.Parse(isoDateTimeLayout, s)
	if err != nil {
		return "", formatErr(iso)
	}
	return t.Format(asDateLayout), nil
}

func formatErr(input string) error {
	return &DateFormatError{
		Input:  input,
		Reason: "expected ISO 8601 format (YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD)",
	}
}

// stripTimezone drops a trailing Z or numeric UTC offset from an ISO
// datetime. No timezone arithmetic happens anywhere in this package.
func stripTimezone(s string) string {
	if strings.HasSuffix(s, "Z") {
		return s[:len(s)-1]
	}
	if i := strings.Index(s, "+"); i >= 0 {
		return s[:i]
	}
	// A negative offset adds a fourth '-' beyond the date's own three
	// components (YYYY-MM-DDTHH:MM:SS-08:00).
	if strings.Count(s, "-") > 2 {
		parts := strings.Split(s, "-")
		return strings.Join(parts[:3], "-")
	}
	return s
}

// ASDateToISO parses AppleScript's verbose date text back into ISO-8601.
// This direction is display-oriented and best-effort: on any parse failure
// the trimmed input is returned unchanged.
func ASDateToISO(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	t, err := time.Parse(asVerboseLayout, trimmed)
	if err != nil {
		return trimmed
	}
	return t.Format(isoDateTimeLayout)
}

// DateAssignment builds the script line assigning an ISO date to an
// AppleScript variable, converting through ISOToASDate.
func DateAssignment(variable, iso string) (string, error) {
	asDate, err := ISOToASDate(iso)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("set %s to date %q", variable, asDate), nil
}
