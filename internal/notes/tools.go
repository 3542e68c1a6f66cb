package notes

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

// RegisterTools adds the notes tools to the MCP server.
func RegisterTools(s *server.MCPServer, r *applescript.Runner) {
	list := mcp.NewTool("notes_list",
		mcp.WithDescription("List notes from the macOS Notes app with id, name, body preview, modification date and folder. Optionally restricted to one folder."),
		mcp.WithString("folder",
			mcp.Description("Only list notes in this folder"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of notes to return (default 20)"),
		),
	)
	s.AddTool(list, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		return mcputil.JSONResult(List(ctx, r,
			mcputil.StringArg(args, "folder", ""),
			mcputil.IntArg(args, "limit", 20)))
	})

	get := mcp.NewTool("notes_get",
		mcp.WithDescription("Retrieve one note by its Notes app identifier, including the full body."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the note"),
		),
	)
	s.AddTool(get, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		noteID := mcputil.StringArg(args, "note_id", "")
		if noteID == "" {
			return mcp.NewToolResultError("note_id is required"), nil
		}
		return mcputil.JSONResult(Get(ctx, r, noteID))
	})

	create := mcp.NewTool("notes_create",
		mcp.WithDescription("Create a new note. When a folder is given it is created on demand."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Title of the new note"),
		),
		mcp.WithString("body",
			mcp.Description("Body text of the new note"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder to create the note in"),
		),
	)
	s.AddTool(create, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		name := mcputil.StringArg(args, "name", "")
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		return mcputil.JSONResult(Create(ctx, r, name,
			mcputil.StringArg(args, "body", ""),
			mcputil.StringArg(args, "folder", "")))
	})

	update := mcp.NewTool("notes_update",
		mcp.WithDescription("Update an existing note's name and/or body."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the note"),
		),
		mcp.WithString("name",
			mcp.Description("New title for the note"),
		),
		mcp.WithString("body",
			mcp.Description("New body text for the note"),
		),
	)
	s.AddTool(update, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		noteID := mcputil.StringArg(args, "note_id", "")
		if noteID == "" {
			return mcp.NewToolResultError("note_id is required"), nil
		}
		return mcputil.JSONResult(Update(ctx, r, noteID,
			mcputil.StringArg(args, "name", ""),
			mcputil.StringArg(args, "body", "")))
	})
}
