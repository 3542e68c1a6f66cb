package reminders

import (
	"strings"
	"testing"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
)

func TestDecodeReminders(t *testing.T) {
	text := "rem-1||Buy milk||false||2025-06-01T09:00:00Z||5|||NEWLINE|||" +
		"rem-2||Call dentist||true||null||null|||NEWLINE|||"

	reminders, diags := decodeReminders(text, "list-1")
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	if len(reminders) != 2 {
		t.Fatalf("got %d reminders", len(reminders))
	}

	first := reminders[0]
	if first.ID != "rem-1" || first.Title != "Buy milk" || first.Completed {
		t.Errorf("first = %+v", first)
	}
	if first.DueDate == nil || *first.DueDate != "2025-06-01T09:00:00Z" {
		t.Errorf("due_date = %v", first.DueDate)
	}
	if first.Priority == nil || *first.Priority != 5 {
		t.Errorf("priority = %v", first.Priority)
	}
	if first.ListID != "list-1" {
		t.Errorf("list_id = %q", first.ListID)
	}

	second := reminders[1]
	if !second.Completed || second.DueDate != nil || second.Priority != nil {
		t.Errorf("second = %+v", second)
	}
}

func TestDecodeRemindersDropsMalformed(t *testing.T) {
	text := "rem-1||Ok||false||null||null|||NEWLINE|||" +
		"broken-line-without-fields|||NEWLINE|||" +
		"rem-2||Also ok||false||null||null|||NEWLINE|||"

	reminders, diags := decodeReminders(text, "list-1")
	if len(reminders) != 2 {
		t.Fatalf("got %d reminders, want 2", len(reminders))
	}
	if reminders[0].ID != "rem-1" || reminders[1].ID != "rem-2" {
		t.Errorf("order not preserved: %+v", reminders)
	}
	if len(diags) != 1 {
		t.Errorf("diagnostics = %v", diags)
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSortReminders(t *testing.T) {
	base := func() []Reminder {
		return []Reminder{
			{ID: "a", Title: "Zebra", Completed: true, Priority: intPtr(9)},
			{ID: "b", Title: "Apple", DueDate: strPtr("2025-01-02T00:00:00Z"), Priority: intPtr(0)},
			{ID: "c", Title: "Mango", DueDate: strPtr("2025-01-01T00:00:00Z")},
		}
	}

	byTitle := base()
	sortReminders(byTitle, "title")
	if byTitle[0].ID != "b" || byTitle[1].ID != "c" || byTitle[2].ID != "a" {
		t.Errorf("title order: %v %v %v", byTitle[0].ID, byTitle[1].ID, byTitle[2].ID)
	}

	byDue := base()
	sortReminders(byDue, "due_date")
	if byDue[0].ID != "c" || byDue[1].ID != "b" || byDue[2].ID != "a" {
		t.Errorf("due_date order: %v %v %v", byDue[0].ID, byDue[1].ID, byDue[2].ID)
	}

	byPriority := base()
	sortReminders(byPriority, "priority")
	if byPriority[0].ID != "b" || byPriority[1].ID != "a" || byPriority[2].ID != "c" {
		t.Errorf("priority order: %v %v %v", byPriority[0].ID, byPriority[1].ID, byPriority[2].ID)
	}

	byCompleted := base()
	sortReminders(byCompleted, "completed")
	if byCompleted[2].ID != "a" {
		t.Errorf("completed should sort last: %+v", byCompleted)
	}
}

func TestSingleReminderResult(t *testing.T) {
	res := &applescript.ExecResult{
		Stdout:  `{"id":"rem-1","title":"Buy milk","completed":false,"due_date":"2025-06-01T09:00:00Z","notes":null,"priority":5}`,
		Success: true,
	}
	out := singleReminderResult(res, "list-1", "Reminder created successfully", "creating")
	if !out.Success || out.Reminder == nil {
		t.Fatalf("result = %+v", out)
	}
	if out.Reminder.Title != "Buy milk" || out.Reminder.ListID != "list-1" {
		t.Errorf("reminder = %+v", out.Reminder)
	}
	if out.Reminder.Notes != nil {
		t.Errorf("notes = %v", out.Reminder.Notes)
	}
	if out.Reminder.Priority == nil || *out.Reminder.Priority != 5 {
		t.Errorf("priority = %v", out.Reminder.Priority)
	}
}

func TestSingleReminderResultBadJSON(t *testing.T) {
	res := &applescript.ExecResult{Stdout: "not json", Success: true}
	out := singleReminderResult(res, "", "x", "creating")
	if out.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(out.Error, "failed to parse") {
		t.Errorf("error = %q", out.Error)
	}
}

func TestSingleReminderResultScriptError(t *testing.T) {
	res := &applescript.ExecResult{
		Success: false,
		Err:     &applescript.ProcessError{Message: "Reminder with ID 'x' not found"},
	}
	out := singleReminderResult(res, "", "x", "updating")
	if out.Success || !strings.Contains(out.Error, "not found") {
		t.Errorf("result = %+v", out)
	}
}

func TestBuildCreateScriptSplicesOptions(t *testing.T) {
	script := buildCreateScript([]string{
		`set body of newReminder to $reminderNotes`,
		`set dueDate to date "06/01/2025 09:00:00 AM"`,
		`set due date of newReminder to dueDate`,
		`set priority of newReminder to 5`,
	})
	for _, want := range []string{
		"$targetListId",
		"$reminderTitle",
		"$reminderNotes",
		`date "06/01/2025 09:00:00 AM"`,
		"set priority of newReminder to 5",
		"reminderJSON(newReminder)",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestCreateRejectsBadDate(t *testing.T) {
	out := Create(nil, applescript.NewRunner(), "list-1", "Title", "", "June 1st", nil)
	if out.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(out.Error, "ISO 8601") {
		t.Errorf("error = %q", out.Error)
	}
}

func TestUpdateRequiresFields(t *testing.T) {
	out := Update(nil, applescript.NewRunner(), "rem-1", UpdateFields{})
	if out.Success || !strings.Contains(out.Error, "at least one field") {
		t.Errorf("result = %+v", out)
	}
}
