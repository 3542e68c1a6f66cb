package calendar

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

// RegisterTools adds the calendar tools to the MCP server.
func RegisterTools(s *server.MCPServer, r *applescript.Runner) {
	list := mcp.NewTool("calendar_list",
		mcp.WithDescription("List all calendars in the macOS Calendar app. Calendar names serve as identifiers."),
	)
	s.AddTool(list, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcputil.JSONResult(ListCalendars(ctx, r))
	})

	events := mcp.NewTool("calendar_events",
		mcp.WithDescription("List events in one calendar, optionally windowed by start_date/end_date (ISO 8601, inclusive)."),
		mcp.WithString("calendar_id",
			mcp.Required(),
			mcp.Description("Name of the calendar to read"),
		),
		mcp.WithString("start_date",
			mcp.Description("Only events ending on or after this date (YYYY-MM-DD)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Only events starting on or before this date (YYYY-MM-DD)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events to return (default 50)"),
		),
	)
	s.AddTool(events, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		calendarID := mcputil.StringArg(args, "calendar_id", "")
		if calendarID == "" {
			return mcp.NewToolResultError("calendar_id is required"), nil
		}
		return mcputil.JSONResult(ListEvents(ctx, r, calendarID,
			mcputil.StringArg(args, "start_date", ""),
			mcputil.StringArg(args, "end_date", ""),
			mcputil.IntArg(args, "limit", 50)))
	})

	create := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create an event in a calendar. Dates are ISO 8601; date-only values work for all-day events."),
		mcp.WithString("calendar_id",
			mcp.Required(),
			mcp.Description("Name of the calendar to create the event in"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Title of the event"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start date/time in ISO 8601 format"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("End date/time in ISO 8601 format"),
		),
		mcp.WithString("location",
			mcp.Description("Location of the event"),
		),
		mcp.WithString("description",
			mcp.Description("Description of the event"),
		),
		mcp.WithBoolean("all_day",
			mcp.Description("Whether this is an all-day event (default false)"),
		),
	)
	s.AddTool(create, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		calendarID := mcputil.StringArg(args, "calendar_id", "")
		summary := mcputil.StringArg(args, "summary", "")
		startDate := mcputil.StringArg(args, "start_date", "")
		endDate := mcputil.StringArg(args, "end_date", "")
		if calendarID == "" || summary == "" || startDate == "" || endDate == "" {
			return mcp.NewToolResultError("calendar_id, summary, start_date and end_date are required"), nil
		}
		return mcputil.JSONResult(CreateEvent(ctx, r, calendarID, summary, startDate, endDate,
			mcputil.StringArg(args, "location", ""),
			mcputil.StringArg(args, "description", ""),
			mcputil.BoolArg(args, "all_day", false)))
	})
}
