package applescript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RunCode is the bridge's public face: inject, execute, decode, normalize.
func RunCode(ctx context.Context, r *Runner, code string, params map[string]Value, timeout time.Duration, format ReturnFormat) Response {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	res, err := r.Execute(ctx, code, params, timeout)
	if err != nil {
		return ErrorResponse(err)
	}
	return BuildResponse(res, format)
}

// RegisterTools adds the applescript_run_code tool to the MCP server.
func RegisterTools(s *server.MCPServer, r *Runner) {
	tool := mcp.NewTool("applescript_run_code",
		mcp.WithDescription("Execute AppleScript code with typed parameter injection. Placeholders of the form $name in the code are replaced with safely encoded literals. Returns a standardized envelope with success, runtime and decoded output."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("The AppleScript code to execute"),
		),
		mcp.WithObject("params",
			mcp.Description("Parameters to inject into $name placeholders (string, boolean, number, list, object or null values)"),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Maximum execution time in seconds (default 30)"),
		),
		mcp.WithString("return_format",
			mcp.Description("Format for the returned data: json, text or raw (default json)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		code, _ := args["code"].(string)
		if code == "" {
			return mcp.NewToolResultError("code is required"), nil
		}

		params := map[string]Value{}
		if rawParams, ok := args["params"].(map[string]any); ok {
			for name, raw := range rawParams {
				v, err := FromAny(raw)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("parameter %q: %v", name, err)), nil
				}
				params[name] = v
			}
		}

		timeout := DefaultTimeout
		if t, ok := args["timeout"].(float64); ok && t > 0 {
			timeout = time.Duration(t * float64(time.Second))
		}

		format := FormatJSON
		if f, ok := args["return_format"].(string); ok && f != "" {
			switch ReturnFormat(f) {
			case FormatJSON, FormatText, FormatRaw:
				format = ReturnFormat(f)
			default:
				return mcp.NewToolResultError(fmt.Sprintf("invalid return_format %q (use json, text or raw)", f)), nil
			}
		}

		resp := RunCode(ctx, r, code, params, timeout, format)
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}
