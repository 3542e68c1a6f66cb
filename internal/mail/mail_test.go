package mail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidAddress(t *testing.T) {
	cases := []struct {
		addr string
		ok   bool
	}{
		{"alice@example.com", true},
		{"bob+tag@sub.example.org", true},
		{"@example.com", false},
		{"alice@", false},
		{"not an address", false},
		{"two words@example.com", false},
	}
	for _, tc := range cases {
		if got := validAddress(tc.addr); got != tc.ok {
			t.Errorf("validAddress(%q) = %v, want %v", tc.addr, got, tc.ok)
		}
	}
}

func TestCleanRecipients(t *testing.T) {
	got, err := cleanRecipients("to", []string{" alice@example.com ", "", "bob@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "alice@example.com" {
		t.Errorf("got %v", got)
	}

	if _, err := cleanRecipients("cc", []string{"nope"}); err == nil {
		t.Error("expected error for malformed address")
	} else if !strings.Contains(err.Error(), "cc") {
		t.Errorf("error should name the list: %v", err)
	}
}

func TestValidateAttachments(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := validateAttachments([]string{file})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !filepath.IsAbs(got[0]) {
		t.Errorf("got %v", got)
	}

	if _, err := validateAttachments([]string{filepath.Join(dir, "missing.pdf")}); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := validateAttachments([]string{dir}); err == nil {
		t.Error("expected error for directory")
	}
}

func TestBuildParamsValidation(t *testing.T) {
	opts := Options{}

	if _, errRes := buildParams(nil, "Hi", "Body", opts, "send"); errRes == nil {
		t.Error("expected failure for missing recipients")
	} else if !strings.Contains(errRes.Message, "missing recipients") {
		t.Errorf("message = %q", errRes.Message)
	}

	if _, errRes := buildParams([]string{"a@b.co"}, "", "Body", opts, "send"); errRes == nil || !strings.Contains(errRes.Message, "missing subject") {
		t.Errorf("expected missing-subject failure, got %+v", errRes)
	}

	if _, errRes := buildParams([]string{"a@b.co"}, "Hi", "", opts, "draft"); errRes == nil || !strings.Contains(errRes.Message, "missing body") {
		t.Errorf("expected missing-body failure, got %+v", errRes)
	}

	params, errRes := buildParams([]string{"a@b.co"}, "Hi", "Body", Options{HTML: true, CC: []string{"c@d.co"}}, "send")
	if errRes != nil {
		t.Fatalf("unexpected failure: %+v", errRes)
	}
	for _, key := range []string{"toRecipients", "ccRecipients", "bccRecipients", "attachmentPaths", "theSubject", "messageBody", "contentType"} {
		if _, ok := params[key]; !ok {
			t.Errorf("params missing %s", key)
		}
	}
}

func TestContentType(t *testing.T) {
	if contentType(true) != "html" || contentType(false) != "text" {
		t.Error("content type mapping wrong")
	}
}
