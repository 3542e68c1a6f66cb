package calendar

import (
	"strings"
	"testing"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
)

func TestFilterEventsByWindow(t *testing.T) {
	events := []Event{
		{ID: "early", StartDate: "2025-01-01T00:00:00", EndDate: "2025-01-01T23:59:59"},
		{ID: "mid", StartDate: "2025-01-15T09:00:00", EndDate: "2025-01-15T10:00:00"},
		{ID: "late", StartDate: "2025-02-01T00:00:00", EndDate: "2025-02-01T23:59:59"},
		{ID: "spanning", StartDate: "2025-01-10T00:00:00", EndDate: "2025-01-20T00:00:00"},
	}

	got := filterEventsByWindow(events, "2025-01-10", "2025-01-31")
	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	want := "mid,spanning"
	if strings.Join(ids, ",") != want {
		t.Errorf("filtered = %v, want %s", ids, want)
	}

	if got := filterEventsByWindow(events, "", ""); len(got) != len(events) {
		t.Errorf("no window should keep all events, got %d", len(got))
	}

	// Start-only window.
	got = filterEventsByWindow(events, "2025-02-01", "")
	if len(got) != 1 || got[0].ID != "late" {
		t.Errorf("start-only window = %+v", got)
	}
}

func TestDatePart(t *testing.T) {
	if datePart("2025-01-15T09:00:00") != "2025-01-15" {
		t.Error("datetime should truncate to date")
	}
	if datePart("2025-01-15") != "2025-01-15" {
		t.Error("date-only should pass through")
	}
}

func TestBuildCreateEventScript(t *testing.T) {
	start, err := applescript.DateAssignment("startDate", "2025-05-23T09:00:00")
	if err != nil {
		t.Fatal(err)
	}
	end, err := applescript.DateAssignment("endDate", "2025-05-23T10:30:00")
	if err != nil {
		t.Fatal(err)
	}
	script := buildCreateEventScript(start, end)
	for _, want := range []string{
		`set startDate to date "05/23/2025 09:00:00 AM"`,
		`set endDate to date "05/23/2025 10:30:00 AM"`,
		"$calendarName",
		"$eventSummary",
		"$allDay",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestCreateEventValidation(t *testing.T) {
	r := applescript.NewRunner()
	if out := CreateEvent(nil, r, "", "x", "2025-01-01", "2025-01-02", "", "", false); out.Success || !strings.Contains(out.Error, "calendar_id") {
		t.Errorf("empty calendar_id: %+v", out)
	}
	if out := CreateEvent(nil, r, "Work", "", "2025-01-01", "2025-01-02", "", "", false); out.Success || !strings.Contains(out.Error, "summary") {
		t.Errorf("empty summary: %+v", out)
	}
	out := CreateEvent(nil, r, "Work", "Standup", "not-a-date", "2025-01-02", "", "", false)
	if out.Success || !strings.Contains(out.Error, "ISO 8601") {
		t.Errorf("bad start date: %+v", out)
	}
}

func TestParseCalendarsJSON(t *testing.T) {
	// Shape produced by the listing script.
	text := `[{"name":"Work", "id":"Work", "description":"", "color":"default", "type":"calendar"},{"name":"Home", "id":"Home", "description":"", "color":"default", "type":"calendar"}]`
	parsed, ok := applescript.DecodeJSON(text)
	if !ok {
		t.Fatal("expected valid JSON")
	}
	arr, ok := parsed.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("parsed = %#v", parsed)
	}
}
