package process

import (
	"context"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtoolkit/localtoolkit/internal/mcputil"
)

// RegisterTools adds the process management tools to the server.
func RegisterTools(s *server.MCPServer) {
	listTool := mcp.NewTool("process_list",
		mcp.WithDescription("List running processes sorted by CPU usage, with optional name filtering"),
		mcp.WithString("filter_name", mcp.Description("Only include processes whose name or command line contains this string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of processes to return (default 20)")),
	)
	s.AddTool(listTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		return mcputil.JSONResult(List(ctx, mcputil.StringArg(args, "filter_name", ""), mcputil.IntArg(args, "limit", 20)))
	})

	infoTool := mcp.NewTool("process_info",
		mcp.WithDescription("Get detailed information about a process"),
		mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process ID to inspect")),
		mcp.WithBoolean("include_memory_details", mcp.Description("Include process and system memory figures")),
		mcp.WithBoolean("include_file_handles", mcp.Description("Include the process's open file handles")),
	)
	s.AddTool(infoTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		pid := int32(mcputil.IntArg(args, "pid", 0))
		return mcputil.JSONResult(Get(ctx, pid,
			mcputil.BoolArg(args, "include_memory_details", false),
			mcputil.BoolArg(args, "include_file_handles", false)))
	})

	monitorTool := mcp.NewTool("process_monitor",
		mcp.WithDescription("Sample a process's resource usage over time and return per-metric statistics"),
		mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process ID to monitor")),
		mcp.WithNumber("interval", mcp.Description("Sampling interval in seconds (default 1)")),
		mcp.WithNumber("duration", mcp.Description("Total monitoring duration in seconds (default 10)")),
		mcp.WithBoolean("include_cpu", mcp.Description("Sample CPU usage (default true)")),
		mcp.WithBoolean("include_memory", mcp.Description("Sample memory usage (default true)")),
		mcp.WithBoolean("include_io", mcp.Description("Sample open file handle counts (default false)")),
	)
	s.AddTool(monitorTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		pid := int32(mcputil.IntArg(args, "pid", 0))
		opts := MonitorOptions{
			Interval:      time.Duration(mcputil.FloatArg(args, "interval", 1) * float64(time.Second)),
			Duration:      time.Duration(mcputil.FloatArg(args, "duration", 10) * float64(time.Second)),
			IncludeCPU:    mcputil.BoolArg(args, "include_cpu", true),
			IncludeMemory: mcputil.BoolArg(args, "include_memory", true),
			IncludeIO:     mcputil.BoolArg(args, "include_io", false),
		}
		return mcputil.JSONResult(Monitor(ctx, pid, opts))
	})

	terminateTool := mcp.NewTool("process_terminate",
		mcp.WithDescription("Send a signal to a process, optionally escalating to SIGKILL"),
		mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process ID to terminate")),
		mcp.WithNumber("signal", mcp.Description("Signal number to send (default 15, SIGTERM)")),
		mcp.WithBoolean("force", mcp.Description("Follow up with SIGKILL if the process survives the signal")),
	)
	s.AddTool(terminateTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		pid := int32(mcputil.IntArg(args, "pid", 0))
		sig := mcputil.IntArg(args, "signal", int(syscall.SIGTERM))
		return mcputil.JSONResult(Terminate(ctx, pid, sig, mcputil.BoolArg(args, "force", false)))
	})

	startTool := mcp.NewTool("process_start",
		mcp.WithDescription("Start a command or open a .app bundle, in the background or waiting for completion"),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command line or path to an application bundle")),
		mcp.WithArray("args", mcp.Description("Extra arguments appended to the command")),
		mcp.WithObject("env", mcp.Description("Environment variables to set for the process")),
		mcp.WithBoolean("background", mcp.Description("Detach the process into its own session (default true)")),
		mcp.WithBoolean("wait_for_completion", mcp.Description("Block until the process exits and capture its output")),
	)
	s.AddTool(startTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := mcputil.Args(req)
		env := map[string]string{}
		if raw, ok := args["env"].(map[string]any); ok {
			for k, v := range raw {
				if s, ok := v.(string); ok {
					env[k] = s
				}
			}
		}
		opts := StartOptions{
			Args:       mcputil.StringSliceArg(args, "args"),
			Env:        env,
			Background: mcputil.BoolArg(args, "background", true),
			Wait:       mcputil.BoolArg(args, "wait_for_completion", false),
		}
		return mcputil.JSONResult(Start(mcputil.StringArg(args, "command", ""), opts))
	})
}
