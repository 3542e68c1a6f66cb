// Package reminders exposes the macOS Reminders app: list management plus
// reminder creation, updates, completion and deletion.
//
// The single-reminder scripts return small JSON objects built in AppleScript;
// the bulk listing path uses a simple delimited format ("||" between fields,
// "|||NEWLINE|||" between records) because escaping arbitrary titles into
// JSON inside AppleScript proved fragile.
package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/logging"
)

// Legacy delimiters used by the bulk listing script.
const (
	listFieldSep  = "||"
	listRecordSep = "|||NEWLINE|||"
)

// listTimeout is longer than the bridge default: iterating a big reminder
// list is slow in the Reminders app.
const listTimeout = 60 * time.Second

// Reminder is one reminder. DueDate keeps the script's ISO-like text;
// pointer fields distinguish "absent" from zero values.
type Reminder struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	DueDate   *string `json:"due_date"`
	Notes     *string `json:"notes"`
	Priority  *int    `json:"priority"`
	ListID    string  `json:"list_id,omitempty"`
}

// ReminderList identifies one list in the Reminders app.
type ReminderList struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Metadata carries counters and echo-backs alongside results.
type Metadata struct {
	Count           int    `json:"count,omitempty"`
	IncompleteCount int    `json:"incomplete_count,omitempty"`
	ExecutionTimeMS int64  `json:"execution_time_ms"`
	SortBy          string `json:"sort_by,omitempty"`
	ListID          string `json:"list_id,omitempty"`
}

// ListsResult is the response shape of reminders_list_lists and
// reminders_create_list.
type ListsResult struct {
	Success  bool           `json:"success"`
	Lists    []ReminderList `json:"lists"`
	Message  string         `json:"message"`
	Metadata *Metadata      `json:"metadata,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// RemindersResult is the response shape of reminders_list.
type RemindersResult struct {
	Success   bool       `json:"success"`
	Reminders []Reminder `json:"reminders"`
	Message   string     `json:"message"`
	Metadata  *Metadata  `json:"metadata,omitempty"`
	Error     string     `json:"error,omitempty"`
	Warnings  []string   `json:"warnings,omitempty"`
}

// ReminderResult is the response shape of the single-reminder tools.
type ReminderResult struct {
	Success  bool      `json:"success"`
	Reminder *Reminder `json:"reminder"`
	Message  string    `json:"message"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// UpdateFields carries the optional changes for Update. Nil fields are left
// untouched.
type UpdateFields struct {
	Title     *string
	Notes     *string
	DueDate   *string
	Priority  *int
	Completed *bool
}

func (u UpdateFields) empty() bool {
	return u.Title == nil && u.Notes == nil && u.DueDate == nil && u.Priority == nil && u.Completed == nil
}

var validSortFields = map[string]bool{
	"title":     true,
	"due_date":  true,
	"priority":  true,
	"completed": true,
}

// ListLists returns every reminder list, sorted by name or id.
func ListLists(ctx context.Context, r *applescript.Runner, sortBy string) ListsResult {
	if sortBy == "" {
		sortBy = "name"
	}
	if sortBy != "name" && sortBy != "id" {
		return ListsResult{Success: false, Lists: []ReminderList{}, Message: fmt.Sprintf("Invalid sort_by parameter: %q", sortBy), Error: "sort_by must be name or id"}
	}

	res, err := r.Execute(ctx, listListsScript, nil, r.Timeout)
	if err != nil {
		return ListsResult{Success: false, Lists: []ReminderList{}, Message: "Failed to list reminder lists", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds(), SortBy: sortBy}
	if !res.Success {
		return ListsResult{Success: false, Lists: []ReminderList{}, Message: "Error listing reminder lists", Error: res.Err.Error(), Metadata: meta}
	}

	var lists []ReminderList
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stdout)), &lists); err != nil {
		return ListsResult{
			Success:  false,
			Lists:    []ReminderList{},
			Message:  "Error parsing reminder lists",
			Error:    fmt.Sprintf("failed to parse list data: %s", applescript.Preview(res.Stdout, 100)),
			Metadata: meta,
		}
	}

	sort.Slice(lists, func(i, j int) bool {
		if sortBy == "id" {
			return lists[i].ID < lists[j].ID
		}
		return lists[i].Name < lists[j].Name
	})
	meta.Count = len(lists)
	return ListsResult{
		Success:  true,
		Lists:    lists,
		Message:  fmt.Sprintf("Found %d reminder list(s)", len(lists)),
		Metadata: meta,
	}
}

// List returns reminders from one list, decoded from the legacy delimited
// grammar. Completed reminders can be filtered out and results sorted by
// title, due_date, priority or completed.
func List(ctx context.Context, r *applescript.Runner, listID string, showCompleted bool, sortBy string, limit int) RemindersResult {
	if strings.TrimSpace(listID) == "" {
		return RemindersResult{Success: false, Reminders: []Reminder{}, Message: "Invalid list ID", Error: "list ID cannot be empty"}
	}
	if sortBy == "" {
		sortBy = "title"
	}
	if !validSortFields[sortBy] {
		return RemindersResult{Success: false, Reminders: []Reminder{}, Message: fmt.Sprintf("Invalid sort_by parameter: %q", sortBy), Error: "sort_by must be one of title, due_date, priority, completed"}
	}
	if limit <= 0 {
		limit = 50
	}

	// When filtering out completed reminders, fetch extra so the limit can
	// still be met after filtering.
	fetchLimit := limit
	if !showCompleted {
		fetchLimit = limit * 3
	}

	res, err := r.Execute(ctx, listRemindersScript, map[string]applescript.Value{
		"targetListId":  applescript.String(listID),
		"limitCount":    applescript.Int(int64(fetchLimit)),
		"showCompleted": applescript.Bool(showCompleted),
	}, listTimeout)
	if err != nil {
		return RemindersResult{Success: false, Reminders: []Reminder{}, Message: "Failed to list reminders", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds(), SortBy: sortBy, ListID: listID}
	if !res.Success {
		return RemindersResult{Success: false, Reminders: []Reminder{}, Message: "Error listing reminders", Error: res.Err.Error(), Metadata: meta}
	}

	reminders, diags := decodeReminders(res.Stdout, listID)
	sortReminders(reminders, sortBy)
	if len(reminders) > limit {
		reminders = reminders[:limit]
	}

	out := RemindersResult{Success: true, Reminders: reminders, Metadata: meta}
	for _, d := range diags {
		logging.Warn("reminders", "%s", d)
		out.Warnings = append(out.Warnings, d.String())
	}
	meta.Count = len(reminders)
	for _, rem := range reminders {
		if !rem.Completed {
			meta.IncompleteCount++
		}
	}
	if len(reminders) > 0 {
		out.Message = fmt.Sprintf("Found %d reminder(s)", len(reminders))
	} else {
		out.Message = "No reminders found in the list"
	}
	return out
}

// Create adds a reminder to a list. Notes, due date (ISO 8601) and priority
// are optional; priority follows the Reminders convention (0=high, 5=medium,
// 9=low).
func Create(ctx context.Context, r *applescript.Runner, listID, title, notes, dueDate string, priority *int) ReminderResult {
	if strings.TrimSpace(listID) == "" {
		return ReminderResult{Success: false, Message: "Invalid list ID", Error: "list ID cannot be empty"}
	}
	if strings.TrimSpace(title) == "" {
		return ReminderResult{Success: false, Message: "Invalid title", Error: "title cannot be empty"}
	}

	var extra []string
	params := map[string]applescript.Value{
		"targetListId":  applescript.String(listID),
		"reminderTitle": applescript.String(title),
	}
	if notes != "" {
		extra = append(extra, "set body of newReminder to $reminderNotes")
		params["reminderNotes"] = applescript.String(notes)
	}
	if dueDate != "" {
		assignment, err := applescript.DateAssignment("dueDate", dueDate)
		if err != nil {
			return ReminderResult{Success: false, Message: "Invalid due date", Error: err.Error()}
		}
		extra = append(extra, assignment, "set due date of newReminder to dueDate")
	}
	if priority != nil {
		extra = append(extra, fmt.Sprintf("set priority of newReminder to %d", *priority))
	}

	script := buildCreateScript(extra)
	res, err := r.Execute(ctx, script, params, r.Timeout)
	if err != nil {
		return ReminderResult{Success: false, Message: "Failed to create reminder", Error: err.Error()}
	}
	return singleReminderResult(res, listID, "Reminder created successfully", "creating")
}

// Update applies the non-nil fields to an existing reminder.
func Update(ctx context.Context, r *applescript.Runner, reminderID string, fields UpdateFields) ReminderResult {
	if strings.TrimSpace(reminderID) == "" {
		return ReminderResult{Success: false, Message: "Invalid reminder ID", Error: "reminder ID cannot be empty"}
	}
	if fields.empty() {
		return ReminderResult{Success: false, Message: "No updates specified", Error: "at least one field must be provided"}
	}

	var updates []string
	params := map[string]applescript.Value{
		"targetReminderId": applescript.String(reminderID),
	}
	if fields.Title != nil {
		updates = append(updates, "set name of targetReminder to $newTitle")
		params["newTitle"] = applescript.String(*fields.Title)
	}
	if fields.Notes != nil {
		updates = append(updates, "set body of targetReminder to $newNotes")
		params["newNotes"] = applescript.String(*fields.Notes)
	}
	if fields.DueDate != nil {
		if *fields.DueDate == "" {
			updates = append(updates, "set due date of targetReminder to missing value")
		} else {
			assignment, err := applescript.DateAssignment("newDueDate", *fields.DueDate)
			if err != nil {
				return ReminderResult{Success: false, Message: "Invalid due date", Error: err.Error()}
			}
			updates = append(updates, assignment, "set due date of targetReminder to newDueDate")
		}
	}
	if fields.Priority != nil {
		updates = append(updates, fmt.Sprintf("set priority of targetReminder to %d", *fields.Priority))
	}
	if fields.Completed != nil {
		updates = append(updates, fmt.Sprintf("set completed of targetReminder to %t", *fields.Completed))
	}

	script := buildUpdateScript(updates)
	res, err := r.Execute(ctx, script, params, r.Timeout)
	if err != nil {
		return ReminderResult{Success: false, Message: "Failed to update reminder", Error: err.Error()}
	}
	return singleReminderResult(res, "", "Reminder updated successfully", "updating")
}

// Complete marks a reminder done.
func Complete(ctx context.Context, r *applescript.Runner, reminderID string) ReminderResult {
	if strings.TrimSpace(reminderID) == "" {
		return ReminderResult{Success: false, Message: "Invalid reminder ID", Error: "reminder ID cannot be empty"}
	}
	res, err := r.Execute(ctx, completeScript, map[string]applescript.Value{
		"targetReminderId": applescript.String(reminderID),
	}, r.Timeout)
	if err != nil {
		return ReminderResult{Success: false, Message: "Failed to complete reminder", Error: err.Error()}
	}
	return singleReminderResult(res, "", "Reminder marked as completed", "completing")
}

// Delete removes a reminder, returning its last known state.
func Delete(ctx context.Context, r *applescript.Runner, reminderID string) ReminderResult {
	if strings.TrimSpace(reminderID) == "" {
		return ReminderResult{Success: false, Message: "Invalid reminder ID", Error: "reminder ID cannot be empty"}
	}
	res, err := r.Execute(ctx, deleteScript, map[string]applescript.Value{
		"targetReminderId": applescript.String(reminderID),
	}, r.Timeout)
	if err != nil {
		return ReminderResult{Success: false, Message: "Failed to delete reminder", Error: err.Error()}
	}
	return singleReminderResult(res, "", "Reminder deleted successfully", "deleting")
}

// CreateList makes a new reminder list.
func CreateList(ctx context.Context, r *applescript.Runner, name string) ListsResult {
	if strings.TrimSpace(name) == "" {
		return ListsResult{Success: false, Lists: []ReminderList{}, Message: "Invalid list name", Error: "list name cannot be empty"}
	}
	res, err := r.Execute(ctx, createListScript, map[string]applescript.Value{
		"listName": applescript.String(name),
	}, r.Timeout)
	if err != nil {
		return ListsResult{Success: false, Lists: []ReminderList{}, Message: "Failed to create reminder list", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds()}
	if !res.Success {
		return ListsResult{Success: false, Lists: []ReminderList{}, Message: "Error creating reminder list", Error: res.Err.Error(), Metadata: meta}
	}

	var created ReminderList
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stdout)), &created); err != nil {
		return ListsResult{Success: false, Lists: []ReminderList{}, Message: "Error parsing created list", Error: err.Error(), Metadata: meta}
	}
	return ListsResult{
		Success:  true,
		Lists:    []ReminderList{created},
		Message:  fmt.Sprintf("Reminder list %q created", created.Name),
		Metadata: meta,
	}
}

// decodeReminders parses the legacy delimited listing grammar.
func decodeReminders(text, listID string) ([]Reminder, []applescript.Diagnostic) {
	records, _, diags := applescript.DecodeRecords(text, applescript.Schema{
		Fields: []applescript.FieldSpec{
			{Name: "id", Kind: applescript.FieldText},
			{Name: "title", Kind: applescript.FieldText},
			{Name: "completed", Kind: applescript.FieldBool},
			{Name: "due_date", Kind: applescript.FieldText, Nullable: true},
			{Name: "priority", Kind: applescript.FieldInt, Nullable: true},
		},
		MinFields: 5,
		RecordSep: listRecordSep,
		FieldSep:  listFieldSep,
	})

	reminders := make([]Reminder, 0, len(records))
	for _, rec := range records {
		rem := Reminder{ListID: listID}
		rem.ID, _ = rec["id"].(string)
		rem.Title, _ = rec["title"].(string)
		rem.Completed, _ = rec["completed"].(bool)
		if due, ok := rec["due_date"].(string); ok {
			rem.DueDate = &due
		}
		if pri, ok := rec["priority"].(int); ok {
			rem.Priority = &pri
		}
		reminders = append(reminders, rem)
	}
	return reminders, diags
}

// sortReminders orders in place. Nil due dates and priorities sort last.
func sortReminders(reminders []Reminder, sortBy string) {
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		switch sortBy {
		case "due_date":
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return *a.DueDate < *b.DueDate
			}
		case "priority":
			switch {
			case a.Priority == nil:
				return false
			case b.Priority == nil:
				return true
			default:
				return *a.Priority < *b.Priority
			}
		case "completed":
			return !a.Completed && b.Completed
		default:
			return a.Title < b.Title
		}
	})
}

func singleReminderResult(res *applescript.ExecResult, listID, successMessage, verb string) ReminderResult {
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds()}
	if !res.Success {
		return ReminderResult{Success: false, Message: "Error " + verb + " reminder", Error: res.Err.Error(), Metadata: meta}
	}

	var rem Reminder
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stdout)), &rem); err != nil {
		return ReminderResult{
			Success:  false,
			Message:  "Error " + verb + " reminder",
			Error:    fmt.Sprintf("failed to parse reminder data: %s", applescript.Preview(res.Stdout, 100)),
			Metadata: meta,
		}
	}
	if listID != "" {
		rem.ListID = listID
	}
	return ReminderResult{Success: true, Reminder: &rem, Message: successMessage, Metadata: meta}
}
