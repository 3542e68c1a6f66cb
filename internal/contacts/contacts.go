// Package contacts exposes the macOS Contacts app as MCP search tools.
package contacts

import (
	"context"
	"fmt"
	"strings"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/logging"
)

// Metadata carries counters the caller may want alongside the records.
type Metadata struct {
	TotalMatches    int   `json:"total_matches"`
	ExecutionTimeMS int64 `json:"execution_time_ms"`
}

// Result is the response shape of both search tools.
type Result struct {
	Success  bool                 `json:"success"`
	Contacts []applescript.Record `json:"contacts"`
	Message  string               `json:"message"`
	Metadata *Metadata            `json:"metadata,omitempty"`
	Error    string               `json:"error,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
}

// schema is the fixed field layout every contact script emits.
func schema() applescript.Schema {
	return applescript.Schema{
		Fields: []applescript.FieldSpec{
			{Name: "id", Kind: applescript.FieldText},
			{Name: "display_name", Kind: applescript.FieldText},
			{Name: "first_name", Kind: applescript.FieldText},
			{Name: "last_name", Kind: applescript.FieldText},
			{Name: "phones", Kind: applescript.FieldList, Sep: applescript.PhoneSep},
			{Name: "emails", Kind: applescript.FieldList, Sep: applescript.EmailSep},
			{Name: "addresses", Kind: applescript.FieldList, Sep: applescript.AddressSep, Components: true},
			{Name: "birthday", Kind: applescript.FieldText, OmitEmpty: true},
			{Name: "notes", Kind: applescript.FieldText, OmitEmpty: true},
			{Name: "organization", Kind: applescript.FieldText, OmitEmpty: true},
		},
		MinFields:    10,
		LeadingCount: true,
	}
}

// SearchByName searches across full, first and last name fields.
func SearchByName(ctx context.Context, r *applescript.Runner, name string, limit int) Result {
	if limit <= 0 {
		limit = 10
	}
	res, err := r.Execute(ctx, searchByNameScript, map[string]applescript.Value{
		"searchName": applescript.String(name),
		"maxResults": applescript.Int(int64(limit)),
	}, r.Timeout)
	if err != nil {
		return failure("Failed to search contacts", err)
	}
	return buildResult(res)
}

// normalizePhone strips everything but digits so formatting differences do
// not defeat matching.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SearchByPhone matches contacts by phone number. With exactMatch false the
// normalized search digits only need to appear somewhere in the number.
func SearchByPhone(ctx context.Context, r *applescript.Runner, phone string, exactMatch bool) Result {
	mode := "partial"
	if exactMatch {
		mode = "exact"
	}
	res, err := r.Execute(ctx, searchByPhoneScript, map[string]applescript.Value{
		"searchMode":      applescript.String(mode),
		"normalizedPhone": applescript.String(normalizePhone(phone)),
	}, r.Timeout)
	if err != nil {
		return failure("Failed to search contacts", err)
	}
	return buildResult(res)
}

func failure(message string, err error) Result {
	return Result{
		Success:  false,
		Contacts: []applescript.Record{},
		Message:  message,
		Error:    err.Error(),
	}
}

func buildResult(res *applescript.ExecResult) Result {
	if !res.Success {
		out := failure("Error searching contacts", res.Err)
		out.Metadata = &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds()}
		return out
	}

	records, total, diags := applescript.DecodeRecords(res.Stdout, schema())
	out := Result{
		Success:  true,
		Contacts: records,
		Metadata: &Metadata{TotalMatches: total, ExecutionTimeMS: res.Elapsed.Milliseconds()},
	}
	for _, d := range diags {
		logging.Warn("contacts", "%s", d)
		out.Warnings = append(out.Warnings, d.String())
	}
	if len(records) > 0 {
		out.Message = fmt.Sprintf("Found %d contact(s)", len(records))
	} else {
		out.Message = "No contacts found matching the search criteria"
		out.Metadata.TotalMatches = 0
		out.Contacts = []applescript.Record{}
	}
	return out
}
