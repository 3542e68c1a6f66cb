package filesystem

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

// RegisterTools adds the filesystem tools to the server.
func RegisterTools(s *server.MCPServer, policy *Policy) {
	readTool := mcp.NewTool("filesystem_read_file",
		mcp.WithDescription("Read the complete contents of a text file inside an allowed directory"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file to read")),
	)
	s.AddTool(readTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		return mcputil.JSONResult(ReadFile(policy, mcputil.StringArg(args, "path", "")))
	})

	writeTool := mcp.NewTool("filesystem_write_file",
		mcp.WithDescription("Create or overwrite a file inside an allowed directory"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file to write")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Text content to write")),
	)
	s.AddTool(writeTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		return mcputil.JSONResult(WriteFile(policy,
			mcputil.StringArg(args, "path", ""),
			mcputil.StringArg(args, "content", "")))
	})

	listTool := mcp.NewTool("filesystem_list_directory",
		mcp.WithDescription("List files and directories inside an allowed directory"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the directory to list")),
	)
	s.AddTool(listTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		return mcputil.JSONResult(ListDirectory(policy, mcputil.StringArg(args, "path", "")))
	})
}
