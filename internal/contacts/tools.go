package contacts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

// RegisterTools adds the contacts tools to the MCP server.
func RegisterTools(s *server.MCPServer, r *applescript.Runner) {
	byName := mcp.NewTool("contacts_search_by_name",
		mcp.WithDescription("Search macOS Contacts by name. Matches against full, first and last name fields and returns structured contact records with phones, emails and addresses."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name to search for (first name, last name or full name)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default 10)"),
		),
	)
	s.AddTool(byName, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		name := mcputil.StringArg(args, "name", "")
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		limit := mcputil.IntArg(args, "limit", 10)
		return mcputil.JSONResult(SearchByName(ctx, r, name, limit))
	})

	byPhone := mcp.NewTool("contacts_search_by_phone",
		mcp.WithDescription("Search macOS Contacts by phone number. Formatting is ignored: digits are compared after normalization. Set exact_match for whole-number matching."),
		mcp.WithString("phone",
			mcp.Required(),
			mcp.Description("The phone number to search for"),
		),
		mcp.WithBoolean("exact_match",
			mcp.Description("Require the full normalized number to match (default false)"),
		),
	)
	s.AddTool(byPhone, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		phone := mcputil.StringArg(args, "phone", "")
		if phone == "" {
			return mcp.NewToolResultError("phone is required"), nil
		}
		exact := mcputil.BoolArg(args, "exact_match", false)
		return mcputil.JSONResult(SearchByPhone(ctx, r, phone, exact))
	})
}
