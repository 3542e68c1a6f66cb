package applescript

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func contactSchema() Schema {
	return Schema{
		Fields: []FieldSpec{
			{Name: "id", Kind: FieldText},
			{Name: "display_name", Kind: FieldText},
			{Name: "first_name", Kind: FieldText},
			{Name: "last_name", Kind: FieldText},
			{Name: "phones", Kind: FieldList, Sep: PhoneSep},
			{Name: "emails", Kind: FieldList, Sep: EmailSep},
			{Name: "addresses", Kind: FieldList, Sep: AddressSep, Components: true},
			{Name: "birthday", Kind: FieldText, OmitEmpty: true},
			{Name: "organization", Kind: FieldText, OmitEmpty: true},
			{Name: "note", Kind: FieldText, OmitEmpty: true},
		},
		MinFields:    10,
		LeadingCount: true,
	}
}

func contactSegment(id, name string) string {
	fields := []string{
		id, name, "Jane", "Doe",
		"mobile:555-0001" + PhoneSep + "work:555-0002",
		"home:jane@example.com",
		"home:street:1 Main St,city:Springfield",
		"", "Acme", "",
	}
	return strings.Join(fields, FieldSep)
}

func TestDecodeRecordsContacts(t *testing.T) {
	text := "2" + RecordSep +
		contactSegment("id-1", "Jane Doe") + RecordSep +
		contactSegment("id-2", "Jane Smith")

	records, total, diags := DecodeRecords(text, contactSchema())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["id"] != "id-1" || records[1]["id"] != "id-2" {
		t.Errorf("record order not preserved: %v", records)
	}

	phones, ok := records[0]["phones"].([]LabeledValue)
	if !ok || len(phones) != 2 {
		t.Fatalf("phones = %#v", records[0]["phones"])
	}
	if phones[0].Label != "mobile" || phones[0].Value != "555-0001" {
		t.Errorf("phones[0] = %+v", phones[0])
	}

	addrs, ok := records[0]["addresses"].([]AddressValue)
	if !ok || len(addrs) != 1 {
		t.Fatalf("addresses = %#v", records[0]["addresses"])
	}
	if addrs[0].Label != "home" || addrs[0].Components["city"] != "Springfield" {
		t.Errorf("addresses[0] = %+v", addrs[0])
	}

	if _, present := records[0]["birthday"]; present {
		t.Error("empty omitempty field should be absent")
	}
	if records[0]["organization"] != "Acme" {
		t.Errorf("organization = %v", records[0]["organization"])
	}
}

func TestDecodeRecordsDropsMalformed(t *testing.T) {
	good := contactSegment("id-1", "Jane Doe")
	short := "id-2" + FieldSep + "Bob" // far fewer than MinFields
	good2 := contactSegment("id-3", "Jane Roe")

	text := strings.Join([]string{good, short, good2}, RecordSep)
	schema := contactSchema()
	schema.LeadingCount = false

	records, total, diags := DecodeRecords(text, schema)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["id"] != "id-1" || records[1]["id"] != "id-3" {
		t.Errorf("surviving records out of order: %v", records)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Message, "insufficient fields") {
		t.Errorf("diagnostic = %q", diags[0].Message)
	}
}

func TestDecodeRecordsRemindersGrammar(t *testing.T) {
	schema := Schema{
		Fields: []FieldSpec{
			{Name: "id", Kind: FieldText},
			{Name: "title", Kind: FieldText},
			{Name: "completed", Kind: FieldBool},
			{Name: "due_date", Kind: FieldDate, Nullable: true},
			{Name: "priority", Kind: FieldInt, Nullable: true},
		},
		MinFields: 5,
		RecordSep: "|||NEWLINE|||",
		FieldSep:  "||",
	}
	text := "r-1||Buy milk||false||Monday, January 1, 2024 at 12:00:00 PM||5" +
		"|||NEWLINE|||" +
		"r-2||Done thing||true||null||null"

	records, _, diags := DecodeRecords(text, schema)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["due_date"] != "2024-01-01T12:00:00" {
		t.Errorf("due_date = %v", records[0]["due_date"])
	}
	if records[0]["priority"] != 5 {
		t.Errorf("priority = %v", records[0]["priority"])
	}
	if records[0]["completed"] != false || records[1]["completed"] != true {
		t.Errorf("completed flags wrong: %v %v", records[0]["completed"], records[1]["completed"])
	}
	if _, present := records[1]["due_date"]; present {
		t.Error("null due_date should be absent")
	}
}

func TestDecodeRecordsEmpty(t *testing.T) {
	records, total, diags := DecodeRecords("   \n", contactSchema())
	if len(records) != 0 || total != 0 || len(diags) != 0 {
		t.Errorf("empty input: records=%v total=%d diags=%v", records, total, diags)
	}
}

func TestDecodeJSON(t *testing.T) {
	v, ok := DecodeJSON(`{"success": true, "items": [1, 2]}`)
	if !ok {
		t.Fatal("expected JSON parse to succeed")
	}
	m, ok := v.(map[string]any)
	if !ok || m["success"] != true {
		t.Errorf("decoded = %#v", v)
	}

	if _, ok := DecodeJSON("not json at all"); ok {
		t.Error("expected JSON parse to fail")
	}
	if _, ok := DecodeJSON(""); ok {
		t.Error("expected empty input to fail")
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("word ", 50)
	got := Preview(long, 20)
	if len(got) > 23 { // 20 plus ellipsis
		t.Errorf("preview too long: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("preview missing ellipsis: %q", got)
	}

	if got := Preview("  a\n\tb  ", 100); got != "a b" {
		t.Errorf("whitespace collapse: %q", got)
	}
}

func TestPreviewUnicodeBoundary(t *testing.T) {
	got := Preview(strings.Repeat("é", 20), 5)
	if !utf8.ValidString(got) {
		t.Fatalf("preview is invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 5)+"..." {
		t.Errorf("preview = %q", got)
	}

	// A multi-byte string under the cap comes back whole.
	if got := Preview("日本語", 10); got != "日本語" {
		t.Errorf("short multi-byte preview = %q", got)
	}
}

func TestPreviewEmittedBySchema(t *testing.T) {
	schema := Schema{
		Fields: []FieldSpec{
			{Name: "id", Kind: FieldText},
			{Name: "body", Kind: FieldText, PreviewLen: 10},
		},
		MinFields: 2,
	}
	records, _, _ := DecodeRecords("n-1"+FieldSep+"a very long note body indeed", schema)
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	preview, ok := records[0]["body_preview"].(string)
	if !ok || !strings.HasSuffix(preview, "...") {
		t.Errorf("body_preview = %#v", records[0]["body_preview"])
	}
}
