// Package calendar exposes the macOS Calendar app: listing calendars and
// events, and creating events.
//
// The Calendar app's calendar id property is unreliable through AppleScript,
// so calendar names double as identifiers throughout.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
)

// eventsTimeout allows for large calendars; event enumeration is slow.
const eventsTimeout = 60 * time.Second

// Calendar describes one calendar. ID equals Name.
type Calendar struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Type        string `json:"type"`
}

// Event is one calendar event with ISO 8601 date strings.
type Event struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	AllDay      bool   `json:"all_day"`
	CalendarID  string `json:"calendar_id"`
}

// Metadata carries counters and echo-backs alongside results.
type Metadata struct {
	Count           int    `json:"count,omitempty"`
	ExecutionTimeMS int64  `json:"execution_time_ms"`
	CalendarID      string `json:"calendar_id,omitempty"`
}

// CalendarsResult is the response shape of calendar_list.
type CalendarsResult struct {
	Success   bool       `json:"success"`
	Calendars []Calendar `json:"calendars"`
	Message   string     `json:"message"`
	Metadata  *Metadata  `json:"metadata,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// EventsResult is the response shape of calendar_events.
type EventsResult struct {
	Success  bool      `json:"success"`
	Events   []Event   `json:"events"`
	Message  string    `json:"message"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// CreateEventResult is the response shape of calendar_create_event.
type CreateEventResult struct {
	Success  bool      `json:"success"`
	Event    *Event    `json:"event"`
	Message  string    `json:"message"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// ListCalendars returns every calendar known to the Calendar app.
func ListCalendars(ctx context.Context, r *applescript.Runner) CalendarsResult {
	res, err := r.Execute(ctx, listCalendarsScript, nil, r.Timeout)
	if err != nil {
		return CalendarsResult{Success: false, Calendars: []Calendar{}, Message: "Failed to list calendars", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds()}
	if !res.Success {
		return CalendarsResult{Success: false, Calendars: []Calendar{}, Message: "Error listing calendars", Error: res.Err.Error(), Metadata: meta}
	}

	var calendars []Calendar
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stdout)), &calendars); err != nil {
		return CalendarsResult{
			Success:   false,
			Calendars: []Calendar{},
			Message:   "Error parsing calendar data",
			Error:     fmt.Sprintf("failed to parse calendar data: %s", applescript.Preview(res.Stdout, 100)),
			Metadata:  meta,
		}
	}
	meta.Count = len(calendars)
	return CalendarsResult{
		Success:   true,
		Calendars: calendars,
		Message:   fmt.Sprintf("Found %d calendar(s)", len(calendars)),
		Metadata:  meta,
	}
}

// calendarExists confirms the named calendar is known before running the
// slower event scripts against it.
func calendarExists(ctx context.Context, r *applescript.Runner, calendarID string) (bool, error) {
	out := ListCalendars(ctx, r)
	if !out.Success {
		return false, fmt.Errorf("failed to access calendars: %s", out.Error)
	}
	for _, cal := range out.Calendars {
		if cal.ID == calendarID || cal.Name == calendarID {
			return true, nil
		}
	}
	return false, nil
}

// ListEvents returns events from one calendar, optionally windowed by ISO
// start/end dates (inclusive, compared on the date portion).
func ListEvents(ctx context.Context, r *applescript.Runner, calendarID, startDate, endDate string, limit int) EventsResult {
	if strings.TrimSpace(calendarID) == "" {
		return EventsResult{Success: false, Events: []Event{}, Message: "Invalid calendar ID", Error: "calendar_id cannot be empty"}
	}
	if limit <= 0 {
		limit = 50
	}

	ok, err := calendarExists(ctx, r, calendarID)
	if err != nil {
		return EventsResult{Success: false, Events: []Event{}, Message: "Failed to list events", Error: err.Error()}
	}
	if !ok {
		return EventsResult{Success: false, Events: []Event{}, Message: "Calendar not found", Error: fmt.Sprintf("calendar with name %q not found", calendarID)}
	}

	res, err := r.Execute(ctx, listEventsScript, map[string]applescript.Value{
		"calendarName": applescript.String(calendarID),
		"limitCount":   applescript.Int(int64(limit)),
	}, eventsTimeout)
	if err != nil {
		return EventsResult{Success: false, Events: []Event{}, Message: "Failed to list events", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds(), CalendarID: calendarID}
	if !res.Success {
		return EventsResult{Success: false, Events: []Event{}, Message: "Error listing events", Error: res.Err.Error(), Metadata: meta}
	}

	var events []Event
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stdout)), &events); err != nil {
		return EventsResult{
			Success:  false,
			Events:   []Event{},
			Message:  "Error parsing event data",
			Error:    fmt.Sprintf("failed to parse event data: %s", applescript.Preview(res.Stdout, 100)),
			Metadata: meta,
		}
	}

	events = filterEventsByWindow(events, startDate, endDate)
	meta.Count = len(events)
	out := EventsResult{Success: true, Events: events, Metadata: meta}
	if len(events) > 0 {
		out.Message = fmt.Sprintf("Found %d event(s)", len(events))
	} else {
		out.Message = "No events found in the calendar"
	}
	return out
}

// filterEventsByWindow keeps events overlapping the [start, end] date window.
// ISO 8601 strings compare correctly as text, so no time parsing is needed.
func filterEventsByWindow(events []Event, startDate, endDate string) []Event {
	if startDate == "" && endDate == "" {
		return events
	}
	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if startDate != "" && datePart(e.EndDate) < datePart(startDate) {
			continue
		}
		if endDate != "" && datePart(e.StartDate) > datePart(endDate) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func datePart(iso string) string {
	if i := strings.Index(iso, "T"); i >= 0 {
		return iso[:i]
	}
	return iso
}

// CreateEvent adds an event to a calendar. Dates are ISO 8601; date-only
// values are accepted for all-day events.
func CreateEvent(ctx context.Context, r *applescript.Runner, calendarID, summary, startDate, endDate, location, description string, allDay bool) CreateEventResult {
	switch {
	case strings.TrimSpace(calendarID) == "":
		return CreateEventResult{Success: false, Message: "calendar_id is required", Error: "calendar_id parameter cannot be empty"}
	case strings.TrimSpace(summary) == "":
		return CreateEventResult{Success: false, Message: "summary is required", Error: "summary parameter cannot be empty"}
	case startDate == "":
		return CreateEventResult{Success: false, Message: "start_date is required", Error: "start_date parameter cannot be empty"}
	case endDate == "":
		return CreateEventResult{Success: false, Message: "end_date is required", Error: "end_date parameter cannot be empty"}
	}

	startAssign, err := applescript.DateAssignment("startDate", startDate)
	if err != nil {
		return CreateEventResult{Success: false, Message: "Invalid start_date", Error: err.Error()}
	}
	endAssign, err := applescript.DateAssignment("endDate", endDate)
	if err != nil {
		return CreateEventResult{Success: false, Message: "Invalid end_date", Error: err.Error()}
	}

	ok, err := calendarExists(ctx, r, calendarID)
	if err != nil {
		return CreateEventResult{Success: false, Message: "Failed to create event", Error: err.Error()}
	}
	if !ok {
		return CreateEventResult{Success: false, Message: "Calendar not found", Error: fmt.Sprintf("calendar with name %q not found", calendarID)}
	}

	script := buildCreateEventScript(startAssign, endAssign)
	res, err := r.Execute(ctx, script, map[string]applescript.Value{
		"calendarName":     applescript.String(calendarID),
		"eventSummary":     applescript.String(summary),
		"eventLocation":    applescript.String(location),
		"eventDescription": applescript.String(description),
		"allDay":           applescript.Bool(allDay),
	}, r.Timeout)
	if err != nil {
		return CreateEventResult{Success: false, Message: "Failed to create event", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds(), CalendarID: calendarID}
	if !res.Success {
		return CreateEventResult{
			Success:  false,
			Message:  fmt.Sprintf("Failed to create event in calendar ID: %s", calendarID),
			Error:    res.Err.Error(),
			Metadata: meta,
		}
	}

	var created struct {
		EventID string `json:"event_id"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stdout)), &created); err != nil {
		return CreateEventResult{
			Success:  false,
			Message:  "Error parsing created event",
			Error:    fmt.Sprintf("failed to parse event data: %s", applescript.Preview(res.Stdout, 100)),
			Metadata: meta,
		}
	}
	return CreateEventResult{
		Success: true,
		Event: &Event{
			ID:          created.EventID,
			Summary:     summary,
			StartDate:   startDate,
			EndDate:     endDate,
			Location:    location,
			Description: description,
			AllDay:      allDay,
			CalendarID:  calendarID,
		},
		Message:  "Event created successfully",
		Metadata: meta,
	}
}
