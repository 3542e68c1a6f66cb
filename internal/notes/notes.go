// Package notes exposes the macOS Notes app: listing, retrieval, creation
// and updates.
package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/logging"
)

// successMarker prefixes single-note script output so a note body that merely
// looks like a record cannot be confused with a result.
const successMarker = "SUCCESS:"

// previewLength bounds the preview extracted from note bodies.
const previewLength = 100

// Note is one note from the Notes app. Dates are ISO 8601 when the script's
// date text could be parsed, the raw text otherwise.
type Note struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Body             string `json:"body"`
	Preview          string `json:"preview,omitempty"`
	ModificationDate string `json:"modification_date"`
	CreationDate     string `json:"creation_date,omitempty"`
	Folder           string `json:"folder,omitempty"`
}

// Metadata carries counters the caller may want alongside the notes.
type Metadata struct {
	TotalMatches    int   `json:"total_matches,omitempty"`
	ExecutionTimeMS int64 `json:"execution_time_ms"`
}

// ListResult is the response shape of notes_list.
type ListResult struct {
	Success  bool      `json:"success"`
	Notes    []Note    `json:"notes"`
	Message  string    `json:"message"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    string    `json:"error,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
}

// NoteResult is the response shape of the single-note tools.
type NoteResult struct {
	Success  bool      `json:"success"`
	Note     *Note     `json:"note"`
	Message  string    `json:"message"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// invalidNameChars are rejected by the Notes app in note titles.
const invalidNameChars = `/\:*?"<>|`

// ValidateName reports whether name is acceptable as a note title.
func ValidateName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return !strings.ContainsAny(name, invalidNameChars)
}

func listSchema() applescript.Schema {
	return applescript.Schema{
		Fields: []applescript.FieldSpec{
			{Name: "id", Kind: applescript.FieldText},
			{Name: "name", Kind: applescript.FieldText},
			{Name: "body", Kind: applescript.FieldText},
			{Name: "modification_date", Kind: applescript.FieldDate},
			{Name: "folder", Kind: applescript.FieldText},
		},
		MinFields:    4,
		LeadingCount: true,
	}
}

// List returns up to limit notes, optionally restricted to one folder.
func List(ctx context.Context, r *applescript.Runner, folder string, limit int) ListResult {
	if limit <= 0 {
		limit = 20
	}
	script := listScript
	params := map[string]applescript.Value{
		"maxResults": applescript.Int(int64(limit)),
	}
	if folder != "" {
		script = listFolderScript
		params["folderName"] = applescript.String(folder)
	}

	res, err := r.Execute(ctx, script, params, r.Timeout)
	if err != nil {
		return ListResult{Success: false, Notes: []Note{}, Message: "Failed to list notes", Error: err.Error()}
	}
	if !res.Success {
		return ListResult{
			Success:  false,
			Notes:    []Note{},
			Message:  "Error listing notes",
			Error:    res.Err.Error(),
			Metadata: &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds()},
		}
	}

	records, total, diags := applescript.DecodeRecords(res.Stdout, listSchema())
	out := ListResult{
		Success:  true,
		Notes:    make([]Note, 0, len(records)),
		Metadata: &Metadata{TotalMatches: total, ExecutionTimeMS: res.Elapsed.Milliseconds()},
	}
	for _, rec := range records {
		out.Notes = append(out.Notes, noteFromRecord(rec))
	}
	for _, d := range diags {
		logging.Warn("notes", "%s", d)
		out.Warnings = append(out.Warnings, d.String())
	}
	if len(out.Notes) > 0 {
		out.Message = fmt.Sprintf("Found %d note(s)", len(out.Notes))
	} else {
		out.Message = "No notes found"
	}
	return out
}

// Get retrieves one note by its Notes app identifier.
func Get(ctx context.Context, r *applescript.Runner, noteID string) NoteResult {
	if strings.TrimSpace(noteID) == "" {
		return NoteResult{Success: false, Message: "Invalid note ID", Error: "note ID cannot be empty"}
	}
	res, err := r.Execute(ctx, getScript, map[string]applescript.Value{
		"targetNoteID": applescript.String(noteID),
	}, r.Timeout)
	if err != nil {
		return NoteResult{Success: false, Message: "Failed to retrieve note", Error: err.Error()}
	}
	return singleNoteResult(res, noteID, "retrieving")
}

// Create makes a new note, creating the folder when it does not exist yet.
func Create(ctx context.Context, r *applescript.Runner, name, body, folder string) NoteResult {
	if !ValidateName(name) {
		return NoteResult{Success: false, Message: "Invalid note name", Error: "note name contains invalid characters or is empty"}
	}
	script := createScript
	params := map[string]applescript.Value{
		"noteName": applescript.String(name),
		"noteBody": applescript.String(body),
	}
	if folder != "" {
		script = createInFolderScript
		params["folderName"] = applescript.String(folder)
	}

	res, err := r.Execute(ctx, script, params, r.Timeout)
	if err != nil {
		return NoteResult{Success: false, Message: "Failed to create note", Error: err.Error()}
	}
	return singleNoteResult(res, "", "creating")
}

// Update changes a note's name and/or body. At least one must be given.
func Update(ctx context.Context, r *applescript.Runner, noteID, name, body string) NoteResult {
	if strings.TrimSpace(noteID) == "" {
		return NoteResult{Success: false, Message: "Invalid note ID", Error: "note ID cannot be empty"}
	}
	if name == "" && body == "" {
		return NoteResult{Success: false, Message: "No updates specified", Error: "at least one of name or body must be provided"}
	}
	if name != "" && !ValidateName(name) {
		return NoteResult{Success: false, Message: "Invalid note name", Error: "note name contains invalid characters"}
	}

	// The script applies an update only when the new value is non-empty, so
	// a single script covers name-only, body-only and both.
	res, err := r.Execute(ctx, updateScript, map[string]applescript.Value{
		"targetNoteID": applescript.String(noteID),
		"newName":      applescript.String(name),
		"newBody":      applescript.String(body),
	}, r.Timeout)
	if err != nil {
		return NoteResult{Success: false, Message: "Failed to update note", Error: err.Error()}
	}
	return singleNoteResult(res, noteID, "updating")
}

func noteFromRecord(rec applescript.Record) Note {
	str := func(key string) string {
		s, _ := rec[key].(string)
		return s
	}
	n := Note{
		ID:               str("id"),
		Name:             str("name"),
		Body:             str("body"),
		ModificationDate: str("modification_date"),
		Folder:           str("folder"),
	}
	n.Preview = applescript.Preview(n.Body, previewLength)
	return n
}

// singleNoteResult maps one SUCCESS:-prefixed record to a NoteResult.
func singleNoteResult(res *applescript.ExecResult, noteID, verb string) NoteResult {
	elapsed := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds()}
	if !res.Success {
		msg := res.Err.Error()
		if noteID != "" && isNotFound(msg) {
			return NoteResult{
				Success:  false,
				Message:  fmt.Sprintf("Note with ID %q not found", noteID),
				Error:    "note not found",
				Metadata: elapsed,
			}
		}
		return NoteResult{
			Success:  false,
			Message:  "Error " + verb + " note",
			Error:    msg,
			Metadata: elapsed,
		}
	}

	note, err := parseNote(res.Stdout)
	if err != nil {
		return NoteResult{
			Success:  false,
			Message:  "Error " + verb + " note",
			Error:    err.Error(),
			Metadata: elapsed,
		}
	}
	return NoteResult{
		Success:  true,
		Note:     note,
		Message:  "Note " + pastTense(verb) + " successfully",
		Metadata: elapsed,
	}
}

func pastTense(verb string) string {
	switch verb {
	case "creating":
		return "created"
	case "updating":
		return "updated"
	default:
		return "retrieved"
	}
}

// isNotFound recognizes the AppleScript error text for a bad note id.
func isNotFound(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "can't get note id") || strings.Contains(lower, "doesn't understand")
}

// parseNote decodes a single SUCCESS:-prefixed delimited note record.
func parseNote(output string) (*Note, error) {
	text := strings.TrimSpace(output)
	if !strings.HasPrefix(text, successMarker) {
		return nil, fmt.Errorf("unexpected script output: %s", applescript.Preview(text, 80))
	}
	fields := strings.Split(strings.TrimPrefix(text, successMarker), applescript.FieldSep)
	if len(fields) < 4 {
		return nil, fmt.Errorf("malformed note record: %d fields", len(fields))
	}

	n := &Note{
		ID:               strings.TrimSpace(fields[0]),
		Name:             strings.TrimSpace(fields[1]),
		Body:             strings.TrimSpace(fields[2]),
		ModificationDate: applescript.ASDateToISO(fields[3]),
	}
	if len(fields) > 4 {
		n.Folder = strings.TrimSpace(fields[4])
	}
	if len(fields) > 5 {
		n.CreationDate = applescript.ASDateToISO(fields[5])
	}
	n.Preview = applescript.Preview(n.Body, previewLength)
	return n, nil
}
