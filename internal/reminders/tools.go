package reminders

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

// RegisterTools adds the reminders tools to the MCP server.
func RegisterTools(s *server.MCPServer, r *applescript.Runner) {
	listLists := mcp.NewTool("reminders_list_lists",
		mcp.WithDescription("List all reminder lists in the macOS Reminders app."),
		mcp.WithString("sort_by",
			mcp.Description("Sort field: name or id (default name)"),
		),
	)
	s.AddTool(listLists, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		return mcputil.JSONResult(ListLists(ctx, r, mcputil.StringArg(args, "sort_by", "name")))
	})

	list := mcp.NewTool("reminders_list",
		mcp.WithDescription("List reminders in a specific list with id, title, completion state, due date and priority."),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("ID of the reminder list"),
		),
		mcp.WithBoolean("show_completed",
			mcp.Description("Include completed reminders (default true)"),
		),
		mcp.WithString("sort_by",
			mcp.Description("Sort field: title, due_date, priority or completed (default title)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of reminders to return (default 50)"),
		),
	)
	s.AddTool(list, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		listID := mcputil.StringArg(args, "list_id", "")
		if listID == "" {
			return mcp.NewToolResultError("list_id is required"), nil
		}
		return mcputil.JSONResult(List(ctx, r, listID,
			mcputil.BoolArg(args, "show_completed", true),
			mcputil.StringArg(args, "sort_by", "title"),
			mcputil.IntArg(args, "limit", 50)))
	})

	create := mcp.NewTool("reminders_create",
		mcp.WithDescription("Create a reminder in a list. Notes, ISO 8601 due date and priority (0=high, 5=medium, 9=low) are optional."),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("ID of the list to add the reminder to"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the reminder"),
		),
		mcp.WithString("notes",
			mcp.Description("Notes to attach to the reminder"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in ISO 8601 format (YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD)"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority: 0=high, 5=medium, 9=low"),
		),
	)
	s.AddTool(create, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		listID := mcputil.StringArg(args, "list_id", "")
		title := mcputil.StringArg(args, "title", "")
		if listID == "" || title == "" {
			return mcp.NewToolResultError("list_id and title are required"), nil
		}
		var priority *int
		if f, ok := args["priority"].(float64); ok {
			p := int(f)
			priority = &p
		}
		return mcputil.JSONResult(Create(ctx, r, listID, title,
			mcputil.StringArg(args, "notes", ""),
			mcputil.StringArg(args, "due_date", ""),
			priority))
	})

	update := mcp.NewTool("reminders_update",
		mcp.WithDescription("Update a reminder. Only provided fields change; an empty due_date clears it."),
		mcp.WithString("reminder_id",
			mcp.Required(),
			mcp.Description("ID of the reminder to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date in ISO 8601 format, empty string to clear"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority: 0=high, 5=medium, 9=low"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("New completion state"),
		),
	)
	s.AddTool(update, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		reminderID := mcputil.StringArg(args, "reminder_id", "")
		if reminderID == "" {
			return mcp.NewToolResultError("reminder_id is required"), nil
		}
		var fields UpdateFields
		if v, ok := args["title"].(string); ok {
			fields.Title = &v
		}
		if v, ok := args["notes"].(string); ok {
			fields.Notes = &v
		}
		if v, ok := args["due_date"].(string); ok {
			fields.DueDate = &v
		}
		if f, ok := args["priority"].(float64); ok {
			p := int(f)
			fields.Priority = &p
		}
		if v, ok := args["completed"].(bool); ok {
			fields.Completed = &v
		}
		return mcputil.JSONResult(Update(ctx, r, reminderID, fields))
	})

	complete := mcp.NewTool("reminders_complete",
		mcp.WithDescription("Mark a reminder as completed."),
		mcp.WithString("reminder_id",
			mcp.Required(),
			mcp.Description("ID of the reminder to complete"),
		),
	)
	s.AddTool(complete, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		reminderID := mcputil.StringArg(args, "reminder_id", "")
		if reminderID == "" {
			return mcp.NewToolResultError("reminder_id is required"), nil
		}
		return mcputil.JSONResult(Complete(ctx, r, reminderID))
	})

	del := mcp.NewTool("reminders_delete",
		mcp.WithDescription("Delete a reminder. Returns the reminder's last state."),
		mcp.WithString("reminder_id",
			mcp.Required(),
			mcp.Description("ID of the reminder to delete"),
		),
	)
	s.AddTool(del, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		reminderID := mcputil.StringArg(args, "reminder_id", "")
		if reminderID == "" {
			return mcp.NewToolResultError("reminder_id is required"), nil
		}
		return mcputil.JSONResult(Delete(ctx, r, reminderID))
	})

	createList := mcp.NewTool("reminders_create_list",
		mcp.WithDescription("Create a new reminder list."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the new list"),
		),
	)
	s.AddTool(createList, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		name := mcputil.StringArg(args, "name", "")
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		return mcputil.JSONResult(CreateList(ctx, r, name))
	})
}
