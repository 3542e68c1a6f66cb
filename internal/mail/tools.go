package mail

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

func optionsFromArgs(args map[string]any) Options {
	return Options{
		CC:          mcputil.StringSliceArg(args, "cc"),
		BCC:         mcputil.StringSliceArg(args, "bcc"),
		Attachments: mcputil.StringSliceArg(args, "attachments"),
		HTML:        mcputil.BoolArg(args, "html", false),
	}
}

// RegisterTools adds the mail tools to the MCP server.
func RegisterTools(s *server.MCPServer, r *applescript.Runner) {
	send := mcp.NewTool("mail_send",
		mcp.WithDescription("Send an email through the macOS Mail app with recipients, CC/BCC, attachments and an optional HTML body."),
		mcp.WithArray("to",
			mcp.Required(),
			mcp.Description("Recipient email addresses"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Subject line"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Message body"),
		),
		mcp.WithArray("cc",
			mcp.Description("CC recipient addresses"),
		),
		mcp.WithArray("bcc",
			mcp.Description("BCC recipient addresses"),
		),
		mcp.WithArray("attachments",
			mcp.Description("Paths of files to attach"),
		),
		mcp.WithBoolean("html",
			mcp.Description("Treat body as HTML (default false)"),
		),
	)
	s.AddTool(send, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		to := mcputil.StringSliceArg(args, "to")
		subject := mcputil.StringArg(args, "subject", "")
		body := mcputil.StringArg(args, "body", "")
		if len(to) == 0 || subject == "" || body == "" {
			return mcp.NewToolResultError("to, subject and body are required"), nil
		}
		return mcputil.JSONResult(Send(ctx, r, to, subject, body, optionsFromArgs(args)))
	})

	draft := mcp.NewTool("mail_draft",
		mcp.WithDescription("Create a draft email in the macOS Mail app without sending it. The draft stays open and visible."),
		mcp.WithArray("to",
			mcp.Required(),
			mcp.Description("Recipient email addresses"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Subject line"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Message body"),
		),
		mcp.WithArray("cc",
			mcp.Description("CC recipient addresses"),
		),
		mcp.WithArray("bcc",
			mcp.Description("BCC recipient addresses"),
		),
		mcp.WithArray("attachments",
			mcp.Description("Paths of files to attach"),
		),
		mcp.WithBoolean("html",
			mcp.Description("Treat body as HTML (default false)"),
		),
	)
	s.AddTool(draft, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		to := mcputil.StringSliceArg(args, "to")
		subject := mcputil.StringArg(args, "subject", "")
		body := mcputil.StringArg(args, "body", "")
		if len(to) == 0 || subject == "" || body == "" {
			return mcp.NewToolResultError("to, subject and body are required"), nil
		}
		return mcputil.JSONResult(Draft(ctx, r, to, subject, body, optionsFromArgs(args)))
	})
}
