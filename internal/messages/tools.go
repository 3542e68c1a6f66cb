package messages

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

// RegisterTools adds the Messages tools to the server.
func RegisterTools(s *server.MCPServer, r *applescript.Runner) {
	listTool := mcp.NewTool("messages_list_conversations",
		mcp.WithDescription("List conversations from the Messages app with a preview of the most recent message"),
	)
	s.AddTool(listTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcputil.JSONResult(ListConversations(ctx, r))
	})

	getTool := mcp.NewTool("messages_get",
		mcp.WithDescription("Get messages from a conversation, most recent first"),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("Conversation (chat) ID, as returned by messages_list_conversations")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of messages to return (default 50)")),
		mcp.WithNumber("before_id", mcp.Description("Only return messages older than this message ID, for paging")),
	)
	s.AddTool(getTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		conversationID := mcputil.StringArg(args, "conversation_id", "")
		limit := mcputil.IntArg(args, "limit", 50)
		beforeID := int64(mcputil.IntArg(args, "before_id", 0))
		return mcputil.JSONResult(Get(ctx, r, "", conversationID, limit, beforeID))
	})

	sendTool := mcp.NewTool("messages_send",
		mcp.WithDescription("Send a message and/or file attachments to a conversation"),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("Conversation (chat) ID to send to")),
		mcp.WithString("text", mcp.Description("Message text to send")),
		mcp.WithArray("attachments", mcp.Description("Absolute paths of files to attach")),
	)
	s.AddTool(sendTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		conversationID := mcputil.StringArg(args, "conversation_id", "")
		text := mcputil.StringArg(args, "text", "")
		attachments := mcputil.StringSliceArg(args, "attachments")
		return mcputil.JSONResult(Send(ctx, r, conversationID, text, attachments))
	})
}
