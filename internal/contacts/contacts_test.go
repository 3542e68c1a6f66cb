package contacts

import (
	"strings"
	"testing"
	"time"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"(555) 123-4567", "5551234567"},
		{"+1 555.123.4567", "15551234567"},
		{"555 1234", "5551234"},
		{"no digits", ""},
	}
	for _, tc := range cases {
		if got := normalizePhone(tc.in); got != tc.want {
			t.Errorf("normalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func sampleOutput() string {
	record := strings.Join([]string{
		"ABID-123",
		"John Smith",
		"John",
		"Smith",
		"mobile:555-0001<<+++>>work:555-0002<<+++>>",
		"home:john@example.com<<===>>>",
		"home:street:1 Main St,city:Springfield,state:IL,<<***>>",
		"1985-3-14",
		"",
		"Acme Corp",
	}, "<<|>>")
	return "1<<||>>" + record
}

func TestBuildResult(t *testing.T) {
	res := &applescript.ExecResult{
		Stdout:  sampleOutput(),
		Success: true,
		Elapsed: 250 * time.Millisecond,
	}
	out := buildResult(res)
	if !out.Success {
		t.Fatalf("expected success: %+v", out)
	}
	if len(out.Contacts) != 1 {
		t.Fatalf("got %d contacts", len(out.Contacts))
	}
	c := out.Contacts[0]
	if c["id"] != "ABID-123" || c["display_name"] != "John Smith" {
		t.Errorf("identity fields wrong: %v", c)
	}

	phones, ok := c["phones"].([]applescript.LabeledValue)
	if !ok || len(phones) != 2 {
		t.Fatalf("phones = %#v", c["phones"])
	}
	if phones[1].Label != "work" || phones[1].Value != "555-0002" {
		t.Errorf("phones[1] = %+v", phones[1])
	}

	addrs, ok := c["addresses"].([]applescript.AddressValue)
	if !ok || len(addrs) != 1 {
		t.Fatalf("addresses = %#v", c["addresses"])
	}
	if addrs[0].Components["state"] != "IL" {
		t.Errorf("address components = %v", addrs[0].Components)
	}

	if c["birthday"] != "1985-3-14" {
		t.Errorf("birthday = %v", c["birthday"])
	}
	if _, present := c["notes"]; present {
		t.Error("empty notes should be omitted")
	}
	if c["organization"] != "Acme Corp" {
		t.Errorf("organization = %v", c["organization"])
	}

	if out.Metadata == nil || out.Metadata.TotalMatches != 1 || out.Metadata.ExecutionTimeMS != 250 {
		t.Errorf("metadata = %+v", out.Metadata)
	}
	if out.Message != "Found 1 contact(s)" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestBuildResultNoMatches(t *testing.T) {
	res := &applescript.ExecResult{Stdout: "0<<||>>", Success: true}
	out := buildResult(res)
	if !out.Success || len(out.Contacts) != 0 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out.Message != "No contacts found matching the search criteria" {
		t.Errorf("message = %q", out.Message)
	}
	if out.Metadata.TotalMatches != 0 {
		t.Errorf("total = %d", out.Metadata.TotalMatches)
	}
}

func TestBuildResultScriptError(t *testing.T) {
	res := &applescript.ExecResult{
		Success: false,
		Err:     &applescript.ProcessError{Message: "Contacts got an error: access denied"},
	}
	out := buildResult(res)
	if out.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(out.Error, "access denied") {
		t.Errorf("error = %q", out.Error)
	}
}

func TestBuildResultDropsShortRecord(t *testing.T) {
	text := "2<<||>>" + "only<<|>>three<<|>>fields" + "<<||>>" +
		strings.SplitN(sampleOutput(), "<<||>>", 2)[1]
	res := &applescript.ExecResult{Stdout: text, Success: true}
	out := buildResult(res)
	if len(out.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(out.Contacts))
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("warnings = %v", out.Warnings)
	}
}
