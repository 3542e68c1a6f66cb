package applescript

import (
	"errors"
	"strings"
	"testing"
)

func TestISOToASDate(t *testing.T) {
	cases := []struct {
		iso  string
		want string
	}{
		{"2025-05-23T09:00:00", "05/23/2025 09:00:00 AM"},
		{"2025-05-23", "05/23/2025 12:00:00 AM"},
		{"2025-05-23T14:30:00Z", "05/23/2025 02:30:00 PM"},
		{"2025-05-23T14:30:00+05:00", "05/23/2025 02:30:00 PM"},
		{"2025-05-23T14:30:00-08:00", "05/23/2025 02:30:00 PM"},
		{"2025-12-31T23:59:00", "12/31/2025 11:59:00 PM"},
		{"2025-01-01T00:00:00", "01/01/2025 12:00:00 AM"},
		{"2025-06-15T12:00:00", "06/15/2025 12:00:00 PM"},
		{"2025-01-05T07:09:01", "01/05/2025 07:09:01 AM"},
		{"2024-02-29", "02/29/2024 12:00:00 AM"},
	}
	for _, tc := range cases {
		got, err := ISOToASDate(tc.iso)
		if err != nil {
			t.Errorf("ISOToASDate(%q) returned error: %v", tc.iso, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ISOToASDate(%q) = %q, want %q", tc.iso, got, tc.want)
		}
	}
}

func TestISOToASDateEmpty(t *testing.T) {
	_, err := ISOToASDate("")
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("error should mention empty input, got %q", err.Error())
	}
}

func TestISOToASDateInvalid(t *testing.T) {
	_, err := ISOToASDate("not-a-date")
	if err == nil {
		t.Fatal("expected error for invalid input")
	}
	var dfe *DateFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected *DateFormatError, got %T", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "YYYY-MM-DDTHH:MM:SS") || !strings.Contains(msg, "YYYY-MM-DD") {
		t.Errorf("error should name both accepted formats, got %q", msg)
	}
}

func TestASDateToISO(t *testing.T) {
	got := ASDateToISO("Monday, January 1, 2024 at 12:00:00 PM")
	if got != "2024-01-01T12:00:00" {
		t.Errorf("got %q, want 2024-01-01T12:00:00", got)
	}

	got = ASDateToISO("Friday, May 23, 2025 at 9:05:07 AM")
	if got != "2025-05-23T09:05:07" {
		t.Errorf("got %q, want 2025-05-23T09:05:07", got)
	}
}

func TestASDateToISOUnparseable(t *testing.T) {
	// The reverse direction never fails; it returns the trimmed input.
	got := ASDateToISO("  next tuesday-ish  ")
	if got != "next tuesday-ish" {
		t.Errorf("got %q, want trimmed original", got)
	}
	if ASDateToISO("") != "" {
		t.Error("empty input should stay empty")
	}
}

func TestDateAssignment(t *testing.T) {
	line, err := DateAssignment("dueDate", "2025-05-23T09:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `set dueDate to date "05/23/2025 09:00:00 AM"`
	if line != want {
		t.Errorf("got %q, want %q", line, want)
	}

	if _, err := DateAssignment("dueDate", "invalid"); err == nil {
		t.Error("expected error for invalid date")
	}
}
